package validatex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Title string `validate:"required"`
	Pass  string `validate:"required,min=8"`
	Media string `validate:"required,oneof=book audiobook"`
}

func TestStruct_Valid(t *testing.T) {
	fe := Struct(sample{Title: "t", Pass: "longenough", Media: "book"})
	require.Nil(t, fe)
}

func TestStruct_RequiredAndMin(t *testing.T) {
	fe := Struct(sample{Pass: "short", Media: "book"})
	require.NotNil(t, fe)

	assert.Equal(t, []string{"cannot be blank"}, fe["title"])
	assert.Equal(t, []string{"must have a minimum length of 8"}, fe["pass"])
}

func TestStruct_Oneof(t *testing.T) {
	fe := Struct(sample{Title: "t", Pass: "longenough", Media: "vinyl"})
	require.NotNil(t, fe)
	assert.Equal(t, []string{"must be one of: book, audiobook"}, fe["media"])
}

func TestFieldErrors_ErrorAndAdd(t *testing.T) {
	fe := FieldErrors{}
	fe.Add("finishDate", "cannot be in the future")

	assert.EqualError(t, fe, "finishDate cannot be in the future")
	assert.Len(t, fe["finishDate"], 1)
}
