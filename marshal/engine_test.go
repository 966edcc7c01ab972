package marshal

import (
	"math"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/jsonbind/buffer"
	"github.com/viant/jsonbind/jsonerr"
	"github.com/viant/jsonbind/value"
)

type status int

func (status) EnumNames() []string { return []string{"NEW", "DONE"} }

type Item struct {
	ID    int      `json:"id"`
	Name  string   `json:"name"`
	Price *float64 `json:"price"`
	Tags  []string `json:"tags"`
}

type Order struct {
	ID      int              `json:"id"`
	Items   []Item           `json:"items"`
	Status  status           `json:"status"`
	Placed  time.Time        `json:"placed"`
	Due     value.Date       `json:"due"`
	Amount  value.Decimal    `json:"amount"`
	Counter *big.Int         `json:"counter"`
	Meta    map[string]int   `json:"meta"`
	Note    *string          `json:"note"`
	Hidden  string           `json:"-"`
	Extra   interface{}      `json:"extra"`
	Scores  [2]float32       `json:"scores"`
	Flags   map[string]*bool `json:"flags,omitempty"`
}

type masked struct {
	secret string
}

func (m *masked) GetSecret() string { return "***" }

func (m *masked) SetSecret(v string) { m.secret = v }

func TestEngine_Marshal(t *testing.T) {
	price := 2.5
	order := Order{
		ID:      1,
		Items:   []Item{{ID: 10, Name: "pen", Price: &price, Tags: []string{}}},
		Status:  1,
		Placed:  time.Date(2024, 1, 2, 3, 4, 5, 6_000_000, time.UTC),
		Due:     value.NewDate(2024, 2, 1),
		Amount:  value.MustParseDecimal("10.50"),
		Counter: new(big.Int).Lsh(big.NewInt(1), 70),
		Meta:    map[string]int{"b": 2, "a": 1},
		Hidden:  "x",
		Scores:  [2]float32{0.5, 1},
	}
	var testCases = []struct {
		description string
		engine      *Engine
		input       interface{}
		expect      string
	}{
		{
			description: "compact",
			engine:      New(false, false, false),
			input:       order,
			expect:      `{"id":1,"items":[{"id":10,"name":"pen","price":2.5,"tags":[]}],"status":"DONE","placed":"2024-01-02T03:04:05.006","due":"2024-02-01","amount":10.50,"counter":1180591620717411303424,"meta":{"a":1,"b":2},"scores":[0.5,1]}`,
		},
		{
			description: "nullable",
			engine:      New(false, false, true),
			input:       Item{ID: 1},
			expect:      `{"id":1,"name":"","price":null,"tags":null}`,
		},
		{
			description: "pretty",
			engine:      New(false, true, false),
			input:       Item{ID: 1, Tags: []string{"a", "b"}},
			expect:      "{\n\t\"id\" : 1,\n\t\"name\" : \"\",\n\t\"tags\" : [\n\t\t\"a\",\n\t\t\"b\"\n\t]\n}",
		},
		{
			description: "pretty empty",
			engine:      New(false, true, false),
			input:       map[string]int{},
			expect:      "{}",
		},
		{
			description: "escaping",
			engine:      New(false, false, false),
			input:       []string{"a\"b\\c/d\n\x01é"},
			expect:      `["a\"b\\c\/d\n\u0001é"]`,
		},
		{
			description: "nil",
			engine:      New(false, false, false),
			input:       nil,
			expect:      `null`,
		},
		{
			description: "nil slice",
			engine:      New(false, false, false),
			input:       []int(nil),
			expect:      `null`,
		},
		{
			description: "pointer",
			engine:      New(false, false, false),
			input:       &Item{ID: 3, Name: "x"},
			expect:      `{"id":3,"name":"x"}`,
		},
		{
			description: "getter",
			engine:      New(false, false, false),
			input:       &masked{secret: "s"},
			expect:      `{"secret":"***"}`,
		},
		{
			description: "direct access",
			engine:      New(true, false, false),
			input:       &masked{secret: "s"},
			expect:      `{"secret":"s"}`,
		},
	}
	for _, testCase := range testCases {
		actual, err := testCase.engine.Marshal(testCase.input)
		require.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.expect, string(actual), testCase.description)
	}
}

func TestEngine_Dynamic(t *testing.T) {
	inner := value.NewOrderedMap(2)
	inner.Set("z", value.FromList(value.List{value.FromInt64(1), value.Null(), value.FromBool(true)}))
	inner.Set("a", value.FromMap(value.NewOrderedMap(0)))
	root := value.NewOrderedMap(2)
	root.Set("s", value.FromString("x"))
	root.Set("inner", value.FromMap(inner))
	root.Set("d", value.FromDecimal(value.MustParseDecimal("1e3")))

	actual, err := New(false, false, false).String(root)
	require.NoError(t, err)
	assert.Equal(t, `{"s":"x","inner":{"z":[1,null,true],"a":{}},"d":1e3}`, actual)

	pretty, err := New(false, true, false).String(value.List{value.FromMap(inner), value.FromList(nil)})
	require.NoError(t, err)
	assert.Equal(t, "[\n\t{\n\t\t\"z\" : [\n\t\t\t1,\n\t\t\tnull,\n\t\t\ttrue\n\t\t],\n\t\t\"a\" : {}\n\t},\n\t[]\n]", pretty)
}

func TestEngine_Errors(t *testing.T) {
	engine := New(false, false, false)
	_, err := engine.Marshal([]float64{math.NaN()})
	kind, ok := jsonerr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, jsonerr.Exception, kind)

	_, err = engine.Marshal(struct{ S status }{S: 5})
	assert.Error(t, err)

	buf := buffer.Get()
	defer buffer.Put(buf)
	err = engine.MarshalTo(buf, map[string]float64{"x": math.Inf(1)})
	assert.Error(t, err)
	assert.Equal(t, 0, buf.Len())
}
