package buk

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"

	"go-buk-export/internal/employee"
	"go-buk-export/internal/shared/apperror"
)

// Employees fetches one page of employee records. The second return is
// the total record count from the pagination envelope (0 when the API
// does not send one); an empty page signals the end of the collection.
func (c *Client) Employees(ctx context.Context, page int) ([]employee.Record, int, error) {
	url := fmt.Sprintf("%s/employees?page_size=%d&page=%d", c.baseURL, c.pageSize, page)
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, 0, err
	}

	root := gjson.ParseBytes(body)
	total := int(root.Get("pagination.count").Int())

	items := root.Get("data")
	if !items.Exists() {
		items = root
	}
	if !items.IsArray() {
		return nil, 0, apperror.New(
			apperror.CodeDecodeFailed,
			fmt.Sprintf("employees page %d: payload is not a list", page),
			0,
		)
	}

	var records []employee.Record
	items.ForEach(func(_, it gjson.Result) bool {
		var rec employee.Record
		// Record decoding is tolerant and cannot fail on shape drift
		if err := json.Unmarshal([]byte(it.Raw), &rec); err == nil {
			records = append(records, rec)
		}
		return true
	})
	return records, total, nil
}
