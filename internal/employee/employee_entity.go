package employee

import (
	"strings"

	"github.com/tidwall/gjson"

	"go-buk-export/internal/shared/attrs"
)

// Record is one employee as returned by the BUK API. Payloads differ
// per tenant, so decoding is tolerant: every field is extracted
// best-effort from the raw document and the document itself is kept for
// the resolver fallbacks that scan beyond the typed shape. Records are
// immutable snapshots; nothing mutates them after decode.
type Record struct {
	DocumentNumber string
	DNI            string
	FirstName      string
	Surname        string
	LastName       string
	SecondSurname  string
	Gender         string
	BirthDate      string
	Status         string
	Nationality    string
	Nationalities  []string

	CurrentJob       *Job
	Jobs             []Job
	CustomAttributes attrs.Map

	raw string
}

// Job is one employment contract instance. Multiple jobs form the
// contract history; the array order carries no meaning.
type Job struct {
	StartDate         string
	EndDate           string
	ContractType      string
	WeeklyHours       string
	CostCenter        string
	CurrencyCode      string
	EntryReason       string
	TerminationReason string
	Role              Role
	CustomAttributes  attrs.Map

	raw string
}

// Role is the nested job role; Name may carry a "/"-delimited prefix
// holding the local title.
type Role struct {
	Name string
}

// Root fetches a top-level job field by its exact key, reporting
// whether it was present and non-null.
func (j Job) Root(key string) (string, bool) {
	if j.raw == "" {
		return "", false
	}
	v := gjson.Get(j.raw, key)
	if !v.Exists() || v.Type == gjson.Null {
		return "", false
	}
	return strings.TrimSpace(v.String()), true
}

// UnmarshalJSON decodes a record without ever failing on shape drift:
// missing, null or retyped fields degrade to their zero values.
func (r *Record) UnmarshalJSON(b []byte) error {
	r.raw = string(b)
	doc := gjson.Parse(r.raw)

	r.DocumentNumber = str(doc, "document_number")
	r.DNI = str(doc, "dni")
	r.FirstName = str(doc, "first_name")
	r.Surname = str(doc, "surname")
	r.LastName = str(doc, "last_name")
	r.SecondSurname = str(doc, "second_surname")
	r.Gender = str(doc, "gender")
	r.Status = str(doc, "status")
	r.Nationality = str(doc, "nationality")

	// birth date shows up under three spellings across tenants
	for _, key := range []string{"date_of_birth", "birth_date", "birthday"} {
		if v := str(doc, key); v != "" {
			r.BirthDate = v
			break
		}
	}

	if nats := doc.Get("nationalities"); nats.IsArray() {
		nats.ForEach(func(_, v gjson.Result) bool {
			r.Nationalities = append(r.Nationalities, strings.TrimSpace(v.String()))
			return true
		})
	}

	if cur := doc.Get("current_job"); cur.IsObject() {
		job := decodeJob(cur)
		r.CurrentJob = &job
	}
	if jobs := doc.Get("jobs"); jobs.IsArray() {
		jobs.ForEach(func(_, v gjson.Result) bool {
			if v.IsObject() {
				r.Jobs = append(r.Jobs, decodeJob(v))
			}
			return true
		})
	}
	if ca := doc.Get("custom_attributes"); ca.IsObject() {
		r.CustomAttributes = attrs.NewMap(ca.Raw)
	}
	return nil
}

func decodeJob(doc gjson.Result) Job {
	j := Job{
		StartDate:         str(doc, "start_date"),
		EndDate:           str(doc, "end_date"),
		ContractType:      str(doc, "contract_type"),
		WeeklyHours:       str(doc, "weekly_hours"),
		CostCenter:        str(doc, "cost_center"),
		CurrencyCode:      str(doc, "currency_code"),
		EntryReason:       str(doc, "entry_reason"),
		TerminationReason: str(doc, "termination_reason"),
		Role:              Role{Name: str(doc, "role.name")},
		raw:               doc.Raw,
	}
	if ca := doc.Get("custom_attributes"); ca.IsObject() {
		j.CustomAttributes = attrs.NewMap(ca.Raw)
	}
	return j
}

// Active reports whether the employee currently holds the job: having
// no current-job end date means active.
func (r *Record) Active() bool {
	return r.CurrentJob == nil || strings.TrimSpace(r.CurrentJob.EndDate) == ""
}

// JobCustomAttributes returns the current job's attribute mapping, or
// an empty one when there is no current job.
func (r *Record) JobCustomAttributes() attrs.Map {
	if r.CurrentJob == nil {
		return attrs.Map{}
	}
	return r.CurrentJob.CustomAttributes
}

// Root fetches a top-level payload field by its exact key, reporting
// whether it was present and non-null. Numbers keep their source text,
// so a 0 survives as "0".
func (r *Record) Root(key string) (string, bool) {
	if r.raw == "" {
		return "", false
	}
	v := gjson.Get(r.raw, key)
	if !v.Exists() || v.Type == gjson.Null {
		return "", false
	}
	return strings.TrimSpace(v.String()), true
}

// RootString is Root without the presence flag.
func (r *Record) RootString(key string) string {
	s, _ := r.Root(key)
	return s
}

func str(doc gjson.Result, path string) string {
	return strings.TrimSpace(doc.Get(path).String())
}
