// Package testutil provides deterministic fixtures shared by package tests.
package testutil

import "github.com/roach88/valu/internal/value"

// SampleOrder returns a fresh insertion-ordered tree covering every JSON
// shape: scalars, null, empty and nested containers, and a string that
// needs no HTML escaping.
func SampleOrder() *value.Object {
	return value.Obj(
		value.P("id", value.String("ord-1001")),
		value.P("total", value.FloatNumber(42.5)),
		value.P("qty", value.IntNumber(3)),
		value.P("paid", value.Bool(true)),
		value.P("coupon", value.Null{}),
		value.P("tags", value.Arr(value.String("gift"), value.String("rush"))),
		value.P("customer", value.Obj(
			value.P("name", value.String("Zoë & <Co>")),
			value.P("address", value.Obj()),
		)),
		value.P("items", value.Arr()),
	)
}

// SampleOrderJSON is SampleOrder rendered as compact JSON.
const SampleOrderJSON = `{"id":"ord-1001","total":42.5,"qty":3,"paid":true,"coupon":null,` +
	`"tags":["gift","rush"],"customer":{"name":"Zoë & <Co>","address":{}},"items":[]}`

// SampleOrderYAML is SampleOrder as a YAML document.
const SampleOrderYAML = `id: ord-1001
total: 42.5
qty: 3
paid: true
coupon: null
tags:
  - gift
  - rush
customer:
  name: Zoë & <Co>
  address: {}
items: []
`

// SampleOrderCUE is SampleOrder as CUE source.
const SampleOrderCUE = `id:    "ord-1001"
total: 42.5
qty:   3
paid:  true
coupon: null
tags: ["gift", "rush"]
customer: {
	name: "Zoë & <Co>"
	address: {}
}
items: []
`
