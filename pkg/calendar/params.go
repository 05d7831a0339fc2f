package calendar

import "net/url"

const (
	ParamMonth     = "month"
	ParamDay       = "day"
	ParamEdit      = "edit"
	ParamEventType = "eventType"
)

// ParamStore is the key/value store the view state lives in. Writes touch
// only the named key.
type ParamStore interface {
	Get(key string) string
	Set(key, value string)
	Delete(key string)
}

// QueryParams is a ParamStore over a URL query.
type QueryParams struct {
	values url.Values
}

func NewQueryParams(values url.Values) *QueryParams {
	if values == nil {
		values = url.Values{}
	}
	return &QueryParams{values: values}
}

// ParseQueryParams reads a raw query string; malformed pairs are dropped.
func ParseQueryParams(raw string) *QueryParams {
	values, _ := url.ParseQuery(raw)
	return NewQueryParams(values)
}

func (q *QueryParams) Get(key string) string { return q.values.Get(key) }

func (q *QueryParams) Set(key, value string) { q.values.Set(key, value) }

func (q *QueryParams) Delete(key string) { q.values.Del(key) }

func (q *QueryParams) Encode() string { return q.values.Encode() }

// Clone copies the store so edits to the copy leave q alone.
func (q *QueryParams) Clone() *QueryParams {
	values := make(url.Values, len(q.values))
	for k, v := range q.values {
		values[k] = append([]string(nil), v...)
	}
	return &QueryParams{values: values}
}
