package export

import (
	"strconv"
	"strings"

	"go-buk-export/internal/employee"
	"go-buk-export/internal/normalize"
	"go-buk-export/internal/shared/attrs"
)

// Columns is the fixed output schema, in the exact order the consuming
// system requires. Note the second contract-type column whose name
// carries a trailing space; the consumer distinguishes the two by that
// exact header.
var Columns = []string{
	"Personnel Number", "GID", "Surname", "Name",
	"Middle Initial", "Aristocratic Title", "Surname Prefix", "Surname Suffix",
	"Preferred Name / Nickname", "Surname 2", "Title", "Gender", "Date of Birth",
	"Nationality 1", "Nationality 2", "Nationality 3", "Highest Level of Education",
	"Contract Type", "Contract Status", "Contractual Weekly Working",
	"Standard Work Week", "Company Entry Date", "Service Date", "Entry Reason", "Company Exit Date",
	"Exit Reason", "Workforce Type", "Management Group", "Date Management Group", "ARE",
	"Location / Office (short name)", "In-company Manager", "OrgCode", "Technical PMP Flag", "GPM Status",
	"Country/Region - Place of Action", "Tax Country/Region", "Tax Country/Region State", "Date Location Change",
	"Address 1", "Address 2", "Address 3", "City", "State", "Country/Region - Home Address", "Postal Code",
	"Incentive Payment Type", "Cost Center", "Functional Area", "Country/Region", "HR Service Area", "Local Pay Level",
	"Date Workforce Type", "Contract Date", "Base Pay", "Target Incentive Amount", "Currency", "Local Job Title",
	"Date Local Job Title", "Depth Structure", "Date GPM Status", "GPM Exit Status", "Date Contract Status", "Date Base Pay",
	"Date Target Incentive Amount", "Global Cost Center", "Name (International)", "Surname (International)",
	"Preferred Surname", "Eligibility for Compensation Planning", "GRIP Position", "SPS_Eligibility", "Date SPS_Eligibility",
	"Total Target Cash", "Date Total Target Cash", "Private E-mail Address",
	"Private Mobile Phone Number", "Base Salary", "Date Base Salary", "Fixed Allowances", "Date Fixed Allowance", "JobRegion",
	"Finance Company Code", "Currency – Payroll", "LTI_Eligibility", "Date LTI_Eligibility", "Bank Country/Region", "Bank Code",
	"Bank Control Key", "Account Number", "International Bank Account Number", "Payroll Area", "Termination Date",
	"Last Date Worked", "Position", "Legal Entity",
	"Employee Group", "Employee Category", "Time Management Status", "Employee Subgroup", "Pay Scale Type", "Pay Scale Area",
	"Pay Scale Group", "Contract Type ", "Standard Weekly Hours", "Country of Birth", "Salutation", "Preferred Name", "Line Manager",
	"SuccessFactors ID",
}

// FilterReasonColumn is appended to Columns in filtered-row contexts.
const FilterReasonColumn = "Filter Reason"

// Row is one flattened output record keyed by column name. Values are
// all strings; dates are YYYYMMDD, decimals fixed 2-place.
type Row map[string]string

// BuildRow assembles the output row for one employee by resolving
// every column independently: a field that cannot be resolved stays
// empty, it never blocks the row. Every string value goes through the
// ASCII normalizer. When reason is non-empty the filter-reason column
// is appended.
func BuildRow(rec *employee.Record, t *CodeTables, reason string) Row {
	preferJob := employee.ResolveOptions{PreferJob: true}
	preferJobDate := employee.ResolveOptions{PreferJob: true, Date: true}
	preferEmp := employee.ResolveOptions{}

	job := employee.Job{}
	if rec.CurrentJob != nil {
		job = *rec.CurrentJob
	}

	// identity / names
	dni := rec.DNI
	if dni == "" {
		dni = rec.DocumentNumber
	}
	dni = strings.NewReplacer(".", "", "-", "").Replace(dni)

	firstName := strings.TrimSpace(rec.FirstName)
	firstNameFirst := ""
	if fields := strings.Fields(firstName); len(fields) > 0 {
		firstNameFirst = fields[0]
	}
	s1 := rec.Surname
	if s1 == "" {
		s1 = rec.LastName
	}
	s2 := rec.SecondSurname
	surname := strings.TrimSpace(strings.Join(nonEmpty(s1, s2), " "))
	surnamePrefix, surnameSuffix := t.SplitSurnameAffixes(surname)

	aristTitle := ""
	if v, ok := rec.CustomAttributes.Lookup(attrs.NewKeySet("Title")); ok {
		aristTitle = v.String()
	}
	gender := MapGender(rec.Gender)
	dob := normalize.Date(rec.BirthDate)
	nat1, nat2, nat3 := NationalityCodes(rec)

	eduAliases := []string{"Highest Level of Education", "Education Level", "Nivel educacional"}
	highestEdu := employee.ResolveAttr(rec, eduAliases, preferEmp)
	if highestEdu == "" {
		highestEdu = employee.ResolveAny(rec, eduAliases, false)
	}

	// contract / hours
	contractTypeRaw := employee.ResolveAttr(rec, []string{"Contract Type", "Tipo de contrato"}, preferJob)
	if contractTypeRaw == "" {
		contractTypeRaw = strings.TrimSpace(job.ContractType)
	}
	contractTypeCode := t.ContractTypeCode(contractTypeRaw)
	contractStatus := t.ContractStatus(rec)

	contractualWeekly := employee.ResolveAttr(rec,
		[]string{"Contractual Weekly Working", "Weekly Hours", "Standard Work Week"}, preferJob)
	if contractualWeekly == "" {
		contractualWeekly = strings.TrimSpace(job.WeeklyHours)
	}
	if contractualWeekly != "" {
		if f, err := strconv.ParseFloat(strings.ReplaceAll(contractualWeekly, ",", "."), 64); err == nil {
			contractualWeekly = strconv.FormatFloat(f, 'f', 2, 64)
		}
	}

	// employment dates
	analysis := employee.AnalyzeContracts(rec)
	companyEntryDate := analysis.OldestStartDate
	serviceDate := analysis.OldestStartDate
	dateContractStatus := normalize.Date(job.StartDate)

	entryReason := strings.TrimSpace(job.EntryReason)
	if entryReason == "" {
		entryReason = employee.ResolveAttr(rec, []string{"Entry Reason", "Razón de entrada"}, preferJob)
	}
	companyExitDate := normalize.Date(job.EndDate)
	if companyExitDate == "" {
		companyExitDate = t.NoExitDate
	}
	exitReason := t.ExitReason(rec, companyExitDate)
	workforceType := WorkforceType(rec)
	mgmtGroup := employee.ResolveAttr(rec, []string{"Management Group"}, preferJob)

	dateMgmtGroup := employee.ResolveAttr(rec,
		[]string{"Date Senior Management Type", "Date Management"}, preferJobDate)
	if dateMgmtGroup == "" || dateMgmtGroup == t.NoExitDate {
		dateMgmtGroup = normalize.Date(job.StartDate)
	}

	are := employee.ResolveAttr(rec, []string{"ARE"}, preferJob)
	locShort := employee.ResolveAttr(rec, []string{"Location / Office (short name)"}, preferJob)
	if locShort == "" {
		locShort = rec.RootString("office_short_name")
	}
	inCompanyMgr := employee.ResolveAttr(rec, []string{"In-company Manager", "Line Manager"}, preferJob)
	orgCode := employee.ResolveAttr(rec, []string{"OrgCode"}, preferJob)
	techPMPFlag := employee.ResolveAttr(rec, []string{"Technical PMP Flag"}, preferJob)
	gpmStatus := employee.ResolveAttr(rec, []string{"GPM Status"}, preferJob)
	placeAction := employee.ResolveAttr(rec, []string{"Country/Region - Place of Action"}, preferJob)
	if placeAction == "" {
		placeAction = rec.RootString("country_code")
	}
	taxCountry := employee.ResolveAttr(rec, []string{"Tax Country/Region"}, preferJob)
	taxState := employee.ResolveAttr(rec, []string{"Tax Country/Region State"}, preferJob)
	dateLocChange := companyEntryDate

	// addresses
	addr1 := firstNonEmpty(
		employee.ResolveAttr(rec, []string{"Address 1"}, preferEmp),
		rec.RootString("address"),
		rec.RootString("address_line1"),
	)
	addr2 := firstNonEmpty(
		employee.ResolveAttr(rec, []string{"Address 2"}, preferEmp),
		rec.RootString("address_line2"),
	)
	addr3 := firstNonEmpty(
		employee.ResolveAttr(rec, []string{"Address 3"}, preferEmp),
		rec.RootString("address_line3"),
	)
	city := rec.RootString("district")
	state := firstNonEmpty(
		employee.ResolveAttr(rec, []string{"State"}, preferEmp),
		rec.RootString("state"),
	)
	countryHome := employee.ResolveAttr(rec, []string{"Country/Region - Home Address"}, preferJob)
	postalCode := employee.ResolveAttr(rec, []string{"Postal Code", "Código Postal"}, preferEmp)

	// compensation / structure
	incentivePaymentType := employee.ResolveAttr(rec, []string{"Incentive Payment Type"}, preferJob)
	costCenter := employee.ResolveAttr(rec, []string{"Cost Center"}, preferJob)
	if costCenter == "" {
		costCenter = strings.TrimSpace(job.CostCenter)
	}
	functionalArea := employee.ResolveAttr(rec, []string{"Functional Area"}, preferJob)
	countryRegion := firstNonEmpty(
		employee.ResolveAttr(rec, []string{"Country/Region"}, preferJob),
		rec.RootString("country"),
	)
	hrServiceArea := employee.ResolveAttr(rec, []string{"HR Service Area"}, preferJob)
	localPayLevel := employee.ResolvePayLevel(rec, t.PayLevel)

	contractDate := employee.ResolveAttr(rec, []string{"Contract Date", "Date Contract"}, preferJobDate)
	if contractDate == "" {
		contractDate = normalize.Date(job.StartDate)
	}

	basePay := ""
	if raw := employee.ResolveAttr(rec, []string{"Base Pay", "Salario Base", "Salary Base"}, preferJob); raw != "" {
		basePay = normalize.DecimalTwoPlaces(raw)
	}

	targetIncentive := t.TargetIncentive(
		employee.ResolveAttr(rec, []string{"Target Incentive Amount"}, preferJob))

	currency := employee.ResolveAttr(rec, []string{"Currency"}, preferJob)
	if currency == "" {
		currency = strings.TrimSpace(job.CurrencyCode)
	}

	// local job title comes from role.name, prefix before "/"
	localJobTitle := ""
	if roleName := strings.TrimSpace(job.Role.Name); roleName != "" {
		localJobTitle = strings.TrimSpace(strings.SplitN(roleName, "/", 2)[0])
	} else {
		localJobTitle = employee.ResolveAttr(rec, []string{"Local Job Title"}, preferJob)
	}

	dateLocalJobTitle := employee.ResolveAttr(rec, []string{"Date Local Job Title"}, preferJobDate)
	depthStructure := employee.ResolveAttr(rec, []string{"Depth Structure"}, preferJob)
	dateGPMStatus := dateContractStatus
	if dateGPMStatus == "" {
		dateGPMStatus = employee.ResolveAttr(rec, []string{"Date GPM Status"}, preferJobDate)
	}
	gpmExitStatus := employee.ResolveAttr(rec, []string{"GPM Exit Status"}, preferJob)
	dateBasePay := employee.ResolveAttr(rec, []string{"Date Base Pay"}, preferJobDate)
	dateTargetIncentive := employee.ResolveAttr(rec, []string{"Date Target Incentive Amount"}, preferJobDate)
	globalCostCenter := employee.ResolveAttr(rec, []string{"Global Cost Center"}, preferJob)

	preferredSurname := employee.ResolveAttr(rec, []string{"Preferred Surname", "Apellido preferido"}, preferEmp)
	eligibilityComp := employee.ResolveAttr(rec, []string{"Eligibility for Compensation Planning"}, preferJob)
	gripPosition := employee.ResolveAttr(rec, []string{"GRIP Position"}, preferJob)
	spsElig := employee.ResolveAttr(rec, []string{"SPS_Eligibility"}, preferJob)
	dateSPSElig := normalize.Date(job.StartDate)

	totalTargetCash := ""
	if raw := employee.ResolveAttr(rec, []string{"Total Target Cash"}, preferJob); raw != "" {
		totalTargetCash = normalize.DecimalTwoPlaces(raw)
	}
	dateTotalTargetCash := employee.ResolveAttr(rec, []string{"Date Total Target Cash"}, preferJobDate)

	privateEmail := firstNonEmpty(
		employee.ResolveAttr(rec,
			[]string{"Private E-mail Address", "Private Email Address", "Correo personal", "Email personal"}, preferEmp),
		rec.RootString("personal_email"),
		rec.RootString("private_email"),
	)
	privateMobile := firstNonEmpty(
		employee.ResolveAttr(rec,
			[]string{"Private Mobile Phone Number", "Private Phone", "Mobile personal", "Celular personal"}, preferEmp),
		rec.RootString("personal_mobile"),
		rec.RootString("private_mobile"),
		rec.RootString("mobile"),
		rec.RootString("cellphone"),
		rec.RootString("phone"),
	)

	// base salary prefers the explicit wage field over attributes
	baseSalaryRaw, ok := rec.Root("base_wage")
	if !ok {
		baseSalaryRaw, ok = job.Root("base_wage")
	}
	if !ok {
		baseSalaryRaw = employee.ResolveAttr(rec,
			[]string{"Base Salary", "Salary Base", "Sueldo Base", "Base Pay"}, preferJob)
	}
	baseSalary := normalize.DecimalTwoPlaces(baseSalaryRaw)
	dateBaseSalary := employee.ResolveAttr(rec, []string{"Date Base Salary", "Base Salary Date"}, preferJobDate)

	fixedAllowances := employee.ResolveAttr(rec, []string{"Fixed Allowances"}, preferJob)
	dateFixedAllowance := employee.ResolveAttr(rec, []string{"Date Fixed Allowance"}, preferJobDate)
	jobRegion := employee.ResolveAttr(rec, []string{"JobRegion", "Country/Region Sub Entity"}, preferJob)
	financeCompanyCode := employee.ResolveAttr(rec, []string{"Finance Company Code"}, preferJob)
	currencyPayroll := employee.ResolveAttr(rec,
		[]string{"Currency – Payroll", "Currency - Payroll", "Currency–Payroll"}, preferJob)
	ltiElig := employee.ResolveAttr(rec, []string{"LTI_Eligibility"}, preferJob)
	dateLTIElig := employee.ResolveAttr(rec, []string{"Date LTI_Eligibility"}, preferJobDate)

	bankCountry := employee.ResolveAttr(rec,
		[]string{"Bank Country/Region Code", "Bank Country/Region"}, preferJob)
	bankCode := employee.ResolveAttr(rec, []string{"Bank Code"}, preferJob)
	if bankCode == "" {
		bankCode = t.BankCode(rec.RootString("bank"))
	}
	bankControlKey := employee.ResolveAttr(rec, []string{"Bank Control Key"}, preferJob)
	accountNumber := firstNonEmpty(
		employee.ResolveAttr(rec, []string{"Account Number"}, preferEmp),
		rec.RootString("account_number"),
	)
	iban := employee.ResolveAttr(rec,
		[]string{"International Bank Account Number", "IBAN"}, preferJob)
	payrollArea := employee.ResolveAttr(rec, []string{"Payroll Area"}, preferJob)
	terminationDate := normalize.DateOrDefault(job.EndDate, t.NoExitDate)
	lastDateWorked := employee.ResolveAttr(rec, []string{"Last Date Worked"}, preferJobDate)
	position := employee.ResolveAttr(rec, []string{"Position"}, preferJob)
	legalEntity := employee.ResolveAttr(rec, []string{"Legal Entity"}, preferJob)

	employeeGroup := EmployeeGroup(contractTypeRaw)
	employeeCategory := EmployeeCategory(mgmtGroup)
	timeMgmtAliases := []string{"Time Management Status", "Time Mgmt Status", "Estado de gestión de tiempo"}
	timeMgmtStatus := employee.ResolveAny(rec, timeMgmtAliases, false)
	if timeMgmtStatus == "" {
		timeMgmtStatus = employee.ResolveAttr(rec, []string{"Time Management Status"}, preferJob)
	}
	employeeSubgroup := employee.ResolveAttr(rec, []string{"Employee Subgroup"}, preferJob)
	payScaleType := employee.ResolveAttr(rec, []string{"Pay Scale Type"}, preferJob)
	payScaleArea := employee.ResolveAttr(rec, []string{"Pay Scale Area"}, preferJob)
	payScaleGroup := employee.ResolveAttr(rec, []string{"Pay Scale Group", "Grupo de escala salarial"}, preferJob)

	countryOfBirth := normalize.CountryOfBirth(rec.RootString("country_code"), t.CountryOfBirth)
	salutation := Salutation(rec.Gender)
	lineManager := employee.ResolveAttr(rec,
		[]string{"Line Manager", "Manager Name", "Jefe directo", "Supervisor"}, preferJob)
	successFactorsID := ""
	if v, ok := rec.CustomAttributes.Lookup(attrs.NewKeySet("Codigo SF", "CodigoSF", "SuccessFactors ID")); ok {
		successFactorsID = v.String()
	}

	gid := ""
	if v, ok := rec.CustomAttributes.Lookup(attrs.NewKeySet("GID")); ok {
		gid = v.String()
	}

	row := Row{
		"Personnel Number":                      dni,
		"GID":                                   gid,
		"Surname":                               surname,
		"Name":                                  firstNameFirst,
		"Middle Initial":                        "",
		"Aristocratic Title":                    "",
		"Surname Prefix":                        surnamePrefix,
		"Surname Suffix":                        surnameSuffix,
		"Preferred Name / Nickname":             firstNameFirst,
		"Surname 2":                             s2,
		"Title":                                 aristTitle,
		"Gender":                                gender,
		"Date of Birth":                         dob,
		"Nationality 1":                         nat1,
		"Nationality 2":                         nat2,
		"Nationality 3":                         nat3,
		"Highest Level of Education":            highestEdu,
		"Contract Type":                         contractTypeCode,
		"Contract Status":                       contractStatus,
		"Contractual Weekly Working":            contractualWeekly,
		"Standard Work Week":                    t.StandardWorkWeek,
		"Company Entry Date":                    companyEntryDate,
		"Service Date":                          serviceDate,
		"Entry Reason":                          entryReason,
		"Company Exit Date":                     companyExitDate,
		"Exit Reason":                           exitReason,
		"Workforce Type":                        workforceType,
		"Management Group":                      mgmtGroup,
		"Date Management Group":                 dateMgmtGroup,
		"ARE":                                   are,
		"Location / Office (short name)":        locShort,
		"In-company Manager":                    inCompanyMgr,
		"OrgCode":                               orgCode,
		"Technical PMP Flag":                    techPMPFlag,
		"GPM Status":                            gpmStatus,
		"Country/Region - Place of Action":      placeAction,
		"Tax Country/Region":                    taxCountry,
		"Tax Country/Region State":              taxState,
		"Date Location Change":                  dateLocChange,
		"Address 1":                             addr1,
		"Address 2":                             addr2,
		"Address 3":                             addr3,
		"City":                                  city,
		"State":                                 state,
		"Country/Region - Home Address":         countryHome,
		"Postal Code":                           postalCode,
		"Incentive Payment Type":                incentivePaymentType,
		"Cost Center":                           costCenter,
		"Functional Area":                       functionalArea,
		"Country/Region":                        countryRegion,
		"HR Service Area":                       hrServiceArea,
		"Local Pay Level":                       localPayLevel,
		"Date Workforce Type":                   "",
		"Contract Date":                         contractDate,
		"Base Pay":                              basePay,
		"Target Incentive Amount":               targetIncentive,
		"Currency":                              currency,
		"Local Job Title":                       localJobTitle,
		"Date Local Job Title":                  dateLocalJobTitle,
		"Depth Structure":                       depthStructure,
		"Date GPM Status":                       dateGPMStatus,
		"GPM Exit Status":                       gpmExitStatus,
		"Date Contract Status":                  dateContractStatus,
		"Date Base Pay":                         dateBasePay,
		"Date Target Incentive Amount":          dateTargetIncentive,
		"Global Cost Center":                    globalCostCenter,
		"Name (International)":                  firstNameFirst,
		"Surname (International)":               surname,
		"Preferred Surname":                     preferredSurname,
		"Eligibility for Compensation Planning": eligibilityComp,
		"GRIP Position":                         gripPosition,
		"SPS_Eligibility":                       spsElig,
		"Date SPS_Eligibility":                  dateSPSElig,
		"Total Target Cash":                     totalTargetCash,
		"Date Total Target Cash":                dateTotalTargetCash,
		"Private E-mail Address":                privateEmail,
		"Private Mobile Phone Number":           privateMobile,
		"Base Salary":                           baseSalary,
		"Date Base Salary":                      dateBaseSalary,
		"Fixed Allowances":                      fixedAllowances,
		"Date Fixed Allowance":                  dateFixedAllowance,
		"JobRegion":                             jobRegion,
		"Finance Company Code":                  financeCompanyCode,
		"Currency – Payroll":                    currencyPayroll,
		"LTI_Eligibility":                       ltiElig,
		"Date LTI_Eligibility":                  dateLTIElig,
		"Bank Country/Region":                   bankCountry,
		"Bank Code":                             bankCode,
		"Bank Control Key":                      bankControlKey,
		"Account Number":                        accountNumber,
		"International Bank Account Number":     iban,
		"Payroll Area":                          payrollArea,
		"Termination Date":                      terminationDate,
		"Last Date Worked":                      lastDateWorked,
		"Position":                              position,
		"Legal Entity":                          legalEntity,
		"Employee Group":                        employeeGroup,
		"Employee Category":                     employeeCategory,
		"Time Management Status":                timeMgmtStatus,
		"Employee Subgroup":                     employeeSubgroup,
		"Pay Scale Type":                        payScaleType,
		"Pay Scale Area":                        payScaleArea,
		"Pay Scale Group":                       payScaleGroup,
		"Contract Type ":                        t.ContractIdentifier(contractTypeCode),
		"Standard Weekly Hours":                 "",
		"Country of Birth":                      countryOfBirth,
		"Salutation":                            salutation,
		"Preferred Name":                        firstNameFirst,
		"Line Manager":                          lineManager,
		"SuccessFactors ID":                     successFactorsID,
	}

	for k, v := range row {
		row[k] = normalize.ASCII(v)
	}
	if reason != "" {
		row[FilterReasonColumn] = reason
	}
	return row
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func nonEmpty(vals ...string) []string {
	var out []string
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
