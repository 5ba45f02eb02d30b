package payloadcms

import (
	"net/url"
	"strconv"
	"strings"
)

// QueryBuilder собирает where-условия в формате qs:
// where[title][equals]=Hello, where[or][0][title][equals]=...
type QueryBuilder struct {
	params url.Values
	groups int
}

func Query() *QueryBuilder {
	return &QueryBuilder{params: url.Values{}}
}

func (qb *QueryBuilder) op(field, operator, value string) *QueryBuilder {
	qb.params.Add("where["+field+"]["+operator+"]", value)
	return qb
}

func (qb *QueryBuilder) Equals(field, value string) *QueryBuilder {
	return qb.op(field, "equals", value)
}

func (qb *QueryBuilder) NotEquals(field, value string) *QueryBuilder {
	return qb.op(field, "not_equals", value)
}

func (qb *QueryBuilder) GreaterThan(field, value string) *QueryBuilder {
	return qb.op(field, "greater_than", value)
}

func (qb *QueryBuilder) LessThan(field, value string) *QueryBuilder {
	return qb.op(field, "less_than", value)
}

func (qb *QueryBuilder) Like(field, value string) *QueryBuilder {
	return qb.op(field, "like", value)
}

// In: значения через запятую
func (qb *QueryBuilder) In(field string, values []string) *QueryBuilder {
	return qb.op(field, "in", strings.Join(values, ","))
}

func (qb *QueryBuilder) Exists(field string, exists bool) *QueryBuilder {
	v := "false"
	if exists {
		v = "true"
	}
	return qb.op(field, "exists", v)
}

// And добавляет подзапрос элементом where[and][i]
func (qb *QueryBuilder) And(sub *QueryBuilder) *QueryBuilder { return qb.group("and", sub) }

// Or добавляет подзапрос элементом where[or][i]
func (qb *QueryBuilder) Or(sub *QueryBuilder) *QueryBuilder { return qb.group("or", sub) }

func (qb *QueryBuilder) group(kind string, sub *QueryBuilder) *QueryBuilder {
	if sub == nil || len(sub.params) == 0 {
		return qb
	}
	prefix := "where[" + kind + "][" + strconv.Itoa(qb.groups) + "]"
	qb.groups++
	for key, values := range sub.params {
		// where[title][equals] -> where[or][0][title][equals]
		rest := strings.TrimPrefix(key, "where")
		for _, v := range values {
			qb.params.Add(prefix+rest, v)
		}
	}
	return qb
}

// Build: закодированная строка запроса (ключи отсортированы).
func (qb *QueryBuilder) Build() string {
	if qb == nil || len(qb.params) == 0 {
		return ""
	}
	return qb.params.Encode()
}

// Values: копия параметров
func (qb *QueryBuilder) Values() url.Values {
	out := url.Values{}
	if qb == nil {
		return out
	}
	for k, vs := range qb.params {
		out[k] = append([]string(nil), vs...)
	}
	return out
}

// EncodeValues позволяет класть QueryBuilder в структуры для go-querystring.
func (qb *QueryBuilder) EncodeValues(_ string, v *url.Values) error {
	if qb == nil {
		return nil
	}
	for k, vs := range qb.params {
		for _, s := range vs {
			v.Add(k, s)
		}
	}
	return nil
}
