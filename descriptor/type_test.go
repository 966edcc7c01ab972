package descriptor

import (
	"errors"
	"math/big"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/jsonbind/jsonerr"
	"github.com/viant/jsonbind/value"
)

type audit struct {
	CreatedBy string
	Version   int
}

type Base struct {
	ID      int
	Version string
}

type color int

func (color) EnumNames() []string { return []string{"RED", "GREEN"} }

type account struct {
	*Base
	audit
	Name    string    `json:"name"`
	Secret  string    `json:"-"`
	Note    string    `format:"ignore"`
	Created time.Time `format:"dateFormat=yyyy/MM/dd"`
	Color   color
	balance int
	active  bool
	scratch int
}

func (a *account) SetBalance(v int) error {
	if v < 0 {
		return errors.New("negative balance")
	}
	a.balance = v * 10
	return nil
}

func (a *account) GetBalance() int { return a.balance }

func (a *account) IsActive() bool { return a.active }

func (a *account) SetActive(v bool) { a.active = v }

func TestFor(t *testing.T) {
	desc, err := For(reflect.TypeOf(&account{}))
	require.NoError(t, err)

	var names []string
	for _, f := range desc.Fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"ID", "Version", "CreatedBy", "name", "Created", "Color", "balance", "active"}, names)
	assert.Nil(t, desc.Lookup("Secret"))
	assert.Nil(t, desc.Lookup("Note"))
	assert.Nil(t, desc.Lookup("scratch"))
	assert.Equal(t, "2006/01/02", desc.Lookup("Created").Shape.Layout)
	assert.Equal(t, Enum, desc.Lookup("Color").Shape.Kind)
	assert.Equal(t, []string{"RED", "GREEN"}, desc.Lookup("Color").Shape.Names)
	assert.Equal(t, desc.Lookup("name"), desc.LookupBytes([]byte("name")))

	again, err := For(reflect.TypeOf(account{}))
	require.NoError(t, err)
	assert.Same(t, desc, again)

	_, err = For(reflect.TypeOf(1))
	kind, ok := jsonerr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, jsonerr.Exception, kind)
}

func TestFor_InvalidTags(t *testing.T) {
	var testCases = []struct {
		description string
		value       interface{}
	}{
		{
			description: "unknown format key",
			value: struct {
				Created time.Time `format:"dateFormat=yyyy-MM-dd,zone=eu"`
			}{},
		},
		{
			description: "invalid timezone",
			value: struct {
				Created time.Time `format:"tz=Nowhere/Unknown"`
			}{},
		},
		{
			description: "unsupported pattern letter",
			value: struct {
				Created time.Time `format:"dateFormat=yyyy-MM-dd GGG"`
			}{},
		},
	}
	for _, testCase := range testCases {
		_, err := For(reflect.TypeOf(testCase.value))
		require.Error(t, err, testCase.description)
		kind, ok := jsonerr.KindOf(err)
		require.True(t, ok, testCase.description)
		assert.Equal(t, jsonerr.Exception, kind, testCase.description)
	}
}

func TestFor_Concurrent(t *testing.T) {
	type ledger struct {
		Entries []struct {
			Amount value.Decimal `json:"amount"`
		} `json:"entries"`
		Owner *Base `json:"owner"`
	}
	rType := reflect.TypeOf(ledger{})
	const workers = 16
	results := make(chan *Type, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			desc, err := For(rType)
			if err != nil {
				results <- nil
				return
			}
			_ = ShapeOf(desc.Lookup("entries").Type).Elem()
			results <- desc
		}()
	}
	wg.Wait()
	close(results)
	var first *Type
	for desc := range results {
		require.NotNil(t, desc)
		if first == nil {
			first = desc
		}
		assert.Same(t, first, desc)
	}
}

func TestField_SetGet(t *testing.T) {
	desc, err := For(reflect.TypeOf(account{}))
	require.NoError(t, err)
	acc := &account{}
	holder := reflect.ValueOf(acc)

	id := desc.Lookup("ID")
	require.NoError(t, id.Set(holder, reflect.ValueOf(7), false))
	require.NotNil(t, acc.Base)
	assert.Equal(t, 7, acc.ID)

	balance := desc.Lookup("balance")
	require.NoError(t, balance.Set(holder, reflect.ValueOf(3), false))
	assert.Equal(t, 30, acc.balance)
	assert.Error(t, balance.Set(holder, reflect.ValueOf(-1), false))
	require.NoError(t, balance.Set(holder, reflect.ValueOf(4), true))
	assert.Equal(t, 4, acc.balance)

	active := desc.Lookup("active")
	require.NoError(t, active.Set(holder, reflect.ValueOf(true), false))
	got, ok, err := active.Get(holder, false)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, true, got.Interface())

	empty := reflect.ValueOf(&account{})
	_, ok, err = id.Get(empty, true)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestShapeOf(t *testing.T) {
	var testCases = []struct {
		description string
		value       interface{}
		kind        Kind
		scalar      ScalarKind
		nullable    bool
	}{
		{description: "string", value: "", kind: String},
		{description: "int32", value: int32(0), kind: Scalar, scalar: Int},
		{description: "uint8 pointer", value: new(uint8), kind: Scalar, scalar: Uint, nullable: true},
		{description: "float", value: 0.0, kind: Scalar, scalar: Float},
		{description: "big int", value: new(big.Int), kind: Scalar, scalar: BigInt, nullable: true},
		{description: "decimal", value: value.Decimal{}, kind: Scalar, scalar: Decimal},
		{description: "date", value: value.Date{}, kind: Date},
		{description: "time", value: value.TimeOfDay{}, kind: Time},
		{description: "date time", value: time.Time{}, kind: DateTime},
		{description: "slice", value: []int{}, kind: List, nullable: true},
		{description: "array", value: [2]int{}, kind: Array},
		{description: "map", value: map[string]int{}, kind: Map, nullable: true},
		{description: "int keyed map", value: map[int]int{}, kind: Invalid, nullable: false},
		{description: "ordered map", value: &value.OrderedMap{}, kind: Map, nullable: true},
		{description: "struct", value: account{}, kind: Object},
		{description: "enum", value: color(0), kind: Enum},
		{description: "dynamic", value: value.Dynamic{}, kind: Dynamic},
	}
	for _, testCase := range testCases {
		shape := ShapeOf(reflect.TypeOf(testCase.value))
		assert.Equal(t, testCase.kind, shape.Kind, testCase.description)
		assert.Equal(t, testCase.scalar, shape.Scalar, testCase.description)
		assert.Equal(t, testCase.nullable, shape.Nullable, testCase.description)
	}
	anyShape := ShapeOf(reflect.TypeOf((*interface{})(nil)).Elem())
	assert.Equal(t, Dynamic, anyShape.Kind)
	assert.True(t, anyShape.IsDynamic())
	assert.Equal(t, Scalar, ShapeOf(reflect.TypeOf([]int{})).Elem().Kind)
	assert.Equal(t, 2, ShapeOf(reflect.TypeOf([2]int{})).Len)
}
