package convert

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultBoolConverterIsTrueFalse(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, "false", r.ToString(false))
	assert.Equal(t, "true", r.ToString(true))

	v, err := r.FromString("true", boolType)
	require.NoError(t, err)
	assert.Equal(t, true, v)
}

func TestRegistriesAreIsolated(t *testing.T) {
	base := NewRegistry()
	sessionA := base.Clone()
	sessionB := base.Clone()

	require.NoError(t, sessionA.UseYesNo())

	assert.Equal(t, "yes", sessionA.ToString(true))
	assert.Equal(t, "true", sessionB.ToString(true))
	assert.Equal(t, "false", base.ToString(false))
}

func TestStringIntFloatRoundTrip(t *testing.T) {
	r := NewRegistry()

	s, err := r.FromString("hello", stringType)
	require.NoError(t, err)
	assert.Equal(t, "hello", s)

	n, err := r.FromString("42", intType)
	require.NoError(t, err)
	assert.Equal(t, 42, n)
	assert.Equal(t, "42", r.ToString(42))

	f, err := r.FromString("3.5", float64Type)
	require.NoError(t, err)
	assert.Equal(t, 3.5, f)
	assert.Equal(t, "3.5", r.ToString(3.5))
}

func TestIntConverterRejectsGarbage(t *testing.T) {
	r := NewRegistry()
	_, err := r.FromString("not-a-number", intType)
	require.Error(t, err)
}

func TestDateTimeConverters(t *testing.T) {
	r := NewRegistry()

	d, err := r.FromString("2024-03-14", dateType)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-14", r.ToString(d))

	tm, err := r.FromString("13:45:09", timeType)
	require.NoError(t, err)
	assert.Equal(t, "13:45:09", r.ToString(tm))

	tmFrac, err := r.FromString("13:45:09.000250", timeType)
	require.NoError(t, err)
	assert.Equal(t, "13:45:09.000250", r.ToString(tmFrac))

	dt, err := r.FromString("2024-03-14 13:45:09", datetimeType)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-14 13:45:09", r.ToString(dt))
}

func TestToStringConvertsSlicesElementWise(t *testing.T) {
	r := NewRegistry()
	out := r.ToString([]interface{}{1, "two", true})
	list, ok := out.([]interface{})
	require.True(t, ok)
	assert.Equal(t, []interface{}{"1", "two", "true"}, list)
}

func TestToStringNilIsNull(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, "null", r.ToString(nil))
}

func TestUnregisteredTypeFallsBackToBaseConverter(t *testing.T) {
	r := NewRegistry()
	type widget struct{ N int }
	assert.Equal(t, "{5}", r.ToString(widget{N: 5}))

	_, err := r.FromString("x", reflect.TypeOf(widget{}))
	require.Error(t, err)
}

func TestRegisterRejectsNilConverter(t *testing.T) {
	r := NewRegistry()
	err := r.Register(intType, nil)
	require.Error(t, err)
}

type greeter struct{ name string }

func (g *greeter) Greet(times int) string {
	out := ""
	for i := 0; i < times; i++ {
		out += "hi " + g.name + " "
	}
	return out
}

func (g *greeter) SetName(name string) {
	g.name = name
}

func (g *greeter) Fail() error {
	return errNilConverter
}

func TestArgAndResultInvokeFixtureMethod(t *testing.T) {
	r := NewRegistry()
	g := &greeter{name: "ada"}
	method := reflect.ValueOf(g).MethodByName("Greet")

	invoke := Result(Arg(method, r), r)
	out, err := invoke([]string{"2"})
	require.NoError(t, err)
	assert.Equal(t, "hi ada hi ada ", out)
}

func TestArgAndResultHandlesVoidReturn(t *testing.T) {
	r := NewRegistry()
	g := &greeter{}
	method := reflect.ValueOf(g).MethodByName("SetName")

	invoke := Result(Arg(method, r), r)
	out, err := invoke([]string{"grace"})
	require.NoError(t, err)
	assert.Equal(t, Void, out)
	assert.Equal(t, "grace", g.name)
}

func TestArgAndResultPropagatesFixtureError(t *testing.T) {
	r := NewRegistry()
	g := &greeter{}
	method := reflect.ValueOf(g).MethodByName("Fail")

	invoke := Result(Arg(method, r), r)
	_, err := invoke(nil)
	require.Error(t, err)
}

func TestArgRejectsWrongArgumentCount(t *testing.T) {
	r := NewRegistry()
	g := &greeter{}
	method := reflect.ValueOf(g).MethodByName("Greet")

	invoke := Arg(method, r)
	_, err := invoke([]string{})
	require.Error(t, err)
}

func TestConverterForUnknownValueUsesBase(t *testing.T) {
	r := NewRegistry()
	c := r.ConverterFor(complex(1, 2))
	assert.IsType(t, baseConverter{}, c)
}

func TestCloneDoesNotAliasUnderlyingMap(t *testing.T) {
	base := NewRegistry()
	clone := base.Clone()
	require.NoError(t, clone.Register(stringType, IntConverter{}))
	assert.Equal(t, "hello", base.ToString("hello"))
	assert.NotEqual(t, "hello", clone.ToString("hello"))
}

func TestTimeOfDayWrapsStandardTime(t *testing.T) {
	r := NewRegistry()
	tm := TimeOfDay(time.Date(0, 1, 1, 9, 0, 0, 0, time.UTC))
	assert.Equal(t, "09:00:00", r.ToString(tm))
}
