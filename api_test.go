package jsonbind

import (
	"errors"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/jsonbind/scanner"
	"github.com/viant/jsonbind/value"
)

type Line struct {
	SKU      string        `json:"sku"`
	Quantity int           `json:"qty"`
	Price    value.Decimal `json:"price"`
}

type Invoice struct {
	ID      int               `json:"id"`
	Client  string            `json:"client"`
	Total   *big.Int          `json:"total"`
	Lines   []Line            `json:"lines"`
	Issued  time.Time         `json:"issued" format:"dateFormat=yyyy-MM-dd HH:mm:ss"`
	Due     value.Date        `json:"due"`
	Attrs   *value.OrderedMap `json:"attrs"`
	Paid    bool              `json:"paid"`
	Comment *string           `json:"comment"`
}

type PatchHas struct {
	ID   bool
	Name bool
	Note bool
}

type Patch struct {
	ID   int        `json:"id"`
	Name string     `json:"name"`
	Note *string    `json:"note"`
	Has  *PatchHas `presenceMarker:"true"`
}

func newInvoice() Invoice {
	total, _ := new(big.Int).SetString("98765432109876543210", 10)
	attrs := value.NewOrderedMap(2)
	attrs.Set("zone", value.FromString("eu"))
	attrs.Set("rank", value.FromInt64(2))
	return Invoice{
		ID:     7,
		Client: "ACME \"Tools\"\n/Dept",
		Total:  total,
		Lines: []Line{
			{SKU: "A-1", Quantity: 2, Price: value.MustParseDecimal("10.50")},
			{SKU: "B-2", Quantity: 1, Price: value.MustParseDecimal("0.001")},
		},
		Issued: time.Date(2024, 3, 4, 5, 6, 7, 0, time.UTC),
		Due:    value.NewDate(2024, 4, 1),
		Attrs:  attrs,
		Paid:   true,
	}
}

func TestRoundTrip(t *testing.T) {
	invoice := newInvoice()
	for _, pretty := range []bool{false, true} {
		text, err := Stringify(invoice, WithPretty(pretty))
		require.NoError(t, err)
		actual, err := ParseInto[Invoice]([]byte(text), WithStrict(true))
		require.NoError(t, err, text)
		assert.Equal(t, invoice.ID, actual.ID)
		assert.Equal(t, invoice.Client, actual.Client)
		assert.Equal(t, 0, invoice.Total.Cmp(actual.Total))
		require.Len(t, actual.Lines, 2)
		for i := range invoice.Lines {
			assert.Equal(t, invoice.Lines[i].SKU, actual.Lines[i].SKU)
			assert.Equal(t, invoice.Lines[i].Price.String(), actual.Lines[i].Price.String())
		}
		assert.True(t, invoice.Issued.Equal(actual.Issued))
		assert.Equal(t, invoice.Due, actual.Due)
		assert.True(t, invoice.Attrs.Equal(actual.Attrs))
		assert.Nil(t, actual.Comment)

		again, err := Stringify(actual, WithPretty(pretty))
		require.NoError(t, err)
		assert.Equal(t, text, again)
	}
}

func TestStringify_Layouts(t *testing.T) {
	line := Line{SKU: "A", Quantity: 1, Price: value.MustParseDecimal("1.5")}
	compact, err := Stringify(line)
	require.NoError(t, err)
	assert.Equal(t, `{"sku":"A","qty":1,"price":1.5}`, compact)

	pretty, err := Stringify(line, WithPretty(true))
	require.NoError(t, err)
	assert.Equal(t, "{\n\t\"sku\" : \"A\",\n\t\"qty\" : 1,\n\t\"price\" : 1.5\n}", pretty)

	compactMap, err := ParseToMap([]byte(compact))
	require.NoError(t, err)
	prettyMap, err := ParseToMap([]byte(pretty))
	require.NoError(t, err)
	assert.True(t, compactMap.Equal(prettyMap))
}

func TestEscapeIdempotence(t *testing.T) {
	var testCases = []struct {
		description string
		input       string
	}{
		{description: "plain", input: "abc"},
		{description: "quotes and slashes", input: `a"b\c/d`},
		{description: "controls", input: "\b\f\n\r\t\x00\x1f"},
		{description: "unicode", input: "żółw ☃ 😀"},
	}
	for _, testCase := range testCases {
		text, err := Stringify(testCase.input)
		require.NoError(t, err, testCase.description)
		unquoted, err := scanner.Unquote(text)
		require.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.input, unquoted, testCase.description)

		list, err := ParseToList([]byte("[" + text + "]"))
		require.NoError(t, err, testCase.description)
		s, _ := list[0].AsString()
		assert.Equal(t, testCase.input, s, testCase.description)
	}
}

func TestBigNumberPrecision(t *testing.T) {
	input := `{"n":123456789012345678901234567890123,"d":3.141592653589793238462643383279,"e":-0.000000000000000000000000000015,"x":25e3,"z":-0.0}`
	m, err := ParseToMap([]byte(input))
	require.NoError(t, err)
	text, err := Stringify(m)
	require.NoError(t, err)
	assert.Equal(t, input, text)

	n, _ := m.Get("n")
	i, ok := n.AsInteger()
	require.True(t, ok)
	assert.Equal(t, "123456789012345678901234567890123", i.String())
}

func TestStrictAndLenient(t *testing.T) {
	input := []byte(`{"sku":"A","color":"red","qty":"many"}`)
	line, err := ParseInto[Line](input)
	require.NoError(t, err)
	assert.Equal(t, Line{SKU: "A"}, line)

	_, err = ParseInto[Line](input, WithStrict(true))
	assert.True(t, errors.Is(err, ErrNameNotFoundInObject))

	_, err = ParseInto[Line]([]byte(`{"qty":"many"}`), WithStrict(true))
	assert.True(t, errors.Is(err, ErrPropertyTypeNotMatchInObject))
	assert.False(t, errors.Is(err, ErrNameNotFoundInObject))
}

func TestEmptyContainers(t *testing.T) {
	m, err := ParseToMap([]byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, 0, m.Len())
	text, err := Stringify(m, WithPretty(true))
	require.NoError(t, err)
	assert.Equal(t, "{}", text)

	list, err := ParseToList([]byte(` [ ] `))
	require.NoError(t, err)
	assert.Len(t, list, 0)
	text, err = Stringify(list)
	require.NoError(t, err)
	assert.Equal(t, "[]", text)

	invoice, err := ParseInto[Invoice]([]byte(`{"lines":[]}`))
	require.NoError(t, err)
	assert.NotNil(t, invoice.Lines)
	assert.Len(t, invoice.Lines, 0)
}

func TestMalformed(t *testing.T) {
	var testCases = []struct {
		description string
		input       string
		expect      error
	}{
		{description: "empty", input: ``, expect: ErrEndOfBuffer},
		{description: "truncated", input: `{"sku":"A"`, expect: ErrEndOfBuffer},
		{description: "missing colon", input: `{"sku" "A"}`, expect: ErrExpectColonAfterName},
		{description: "bad name", input: `{true:1}`, expect: ErrNameInvalid},
		{description: "bad byte", input: `{"sku":@}`, expect: ErrInvalidByte},
		{description: "missing comma", input: `{"sku":"A" "qty":1}`, expect: ErrUnexpectedTokenAfterLeftBrace},
		{description: "not an object", input: `"x"`, expect: ErrPropertyTypeNotMatchInObject},
	}
	for _, testCase := range testCases {
		var line Line
		err := Bind([]byte(testCase.input), &line)
		require.Error(t, err, testCase.description)
		assert.True(t, errors.Is(err, testCase.expect), testCase.description+": "+err.Error())
		var jErr *Error
		require.True(t, errors.As(err, &jErr), testCase.description)
	}
}

func TestNullHandling(t *testing.T) {
	invoice, err := ParseInto[Invoice]([]byte(`{"id":null,"client":null,"total":null,"lines":null,"attrs":null,"comment":null}`))
	require.NoError(t, err)
	assert.Equal(t, Invoice{}, invoice)

	text, err := Stringify(Line{}, WithNullable(true))
	require.NoError(t, err)
	assert.Equal(t, `{"sku":"","qty":0,"price":0}`, text)

	text, err = Stringify(Invoice{}, WithNullable(true))
	require.NoError(t, err)
	assert.Equal(t, `{"id":0,"client":"","total":null,"lines":null,"issued":null,"due":null,"attrs":null,"paid":false,"comment":null}`, text)

	text, err = Stringify(Invoice{})
	require.NoError(t, err)
	assert.Equal(t, `{"id":0,"client":"","paid":false}`, text)
}

func TestPresenceMarker(t *testing.T) {
	patch, err := ParseInto[Patch]([]byte(`{"id":3,"note":null}`))
	require.NoError(t, err)
	require.NotNil(t, patch.Has)
	assert.Equal(t, PatchHas{ID: true, Note: true}, *patch.Has)

	text, err := Stringify(patch, WithNullable(true))
	require.NoError(t, err)
	assert.Equal(t, `{"id":3,"note":null}`, text)

	text, err = Stringify(Patch{ID: 1, Name: "x"})
	require.NoError(t, err)
	assert.Equal(t, `{"id":1,"name":"x"}`, text)
}

func TestBindList(t *testing.T) {
	lines, err := BindList([]byte(`[{"sku":"A","qty":1},{"sku":"B","qty":2}]`), reflect.TypeOf(Line{}))
	require.NoError(t, err)
	assert.Equal(t, []Line{{SKU: "A", Quantity: 1}, {SKU: "B", Quantity: 2}}, lines)

	d, err := Parse([]byte(`true`))
	require.NoError(t, err)
	assert.True(t, d.Equal(value.FromBool(true)))
}

func TestConcurrentRoundTrip(t *testing.T) {
	type Shipment struct {
		ID      int               `json:"id"`
		Carrier string            `json:"carrier"`
		Weight  value.Decimal     `json:"weight"`
		Stops   []Line            `json:"stops"`
		Meta    *value.OrderedMap `json:"meta"`
	}
	const workers, iterations = 16, 200
	errs := make(chan error, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				input := fmt.Sprintf(`{"id":%d,"carrier":"c-%d","weight":%d.25,"stops":[{"sku":"s%d","qty":%d}],"meta":{"w":%d}}`, i, w, i, w, i, w)
				shipment, err := ParseInto[Shipment]([]byte(input), WithStrict(true))
				if err != nil {
					errs <- err
					return
				}
				text, err := Stringify(shipment)
				if err != nil {
					errs <- err
					return
				}
				expect := fmt.Sprintf(`{"id":%d,"carrier":"c-%d","weight":%d.25,"stops":[{"sku":"s%d","qty":%d,"price":0}],"meta":{"w":%d}}`, i, w, i, w, i, w)
				if text != expect {
					errs <- fmt.Errorf("expected %s, but had %s", expect, text)
					return
				}
			}
		}(w)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	location := filepath.Join(dir, "invoice.json")
	invoice := newInvoice()
	require.NoError(t, StringifyToFile(location, invoice, WithPretty(true)))

	actual, err := ParseFile[Invoice](location)
	require.NoError(t, err)
	assert.Equal(t, invoice.Client, actual.Client)

	m, err := ParseFileToMap(location)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "client", "total", "lines", "issued", "due", "attrs", "paid"}, m.Keys())

	require.NoError(t, os.WriteFile(location, []byte(`[1,2]`), 0o644))
	list, err := ParseFileToList(location)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = ParseFileToMap(filepath.Join(dir, "missing.json"))
	assert.True(t, errors.Is(err, ErrException))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
