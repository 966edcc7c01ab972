// Package jsonbind binds JSON text into typed Go structs, ordered maps and lists,
// and serializes them back.
//
// Parsing uses its own scanner and keeps numeric precision: generic values hold
// integers as *big.Int and fractions as value.Decimal. Struct members are bound
// by json/format tags, through SetX/GetX accessors unless direct access is requested.
//
//	type Order struct {
//		ID     int           `json:"id"`
//		Placed time.Time     `format:"dateFormat=yyyy-MM-dd HH:mm:ss"`
//		Amount value.Decimal `json:"amount"`
//	}
//
//	order, err := jsonbind.ParseInto[Order](data, jsonbind.WithStrict(true))
//	text, err := jsonbind.Stringify(order, jsonbind.WithPretty(true))
package jsonbind
