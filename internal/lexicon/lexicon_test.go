package lexicon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestList_CountIsCaseInsensitive(t *testing.T) {
	l := New("fear", "Scared", "afraid", "what if")
	assert.Equal(t, 2, l.Count("I'm SCARED and, what if it fails?"))
	assert.Equal(t, 0, l.Count(""))
}

func TestList_SubstringNotWordBoundary(t *testing.T) {
	l := New("fear", "fear")
	assert.True(t, l.Any("I feel fearless"))
	assert.Equal(t, []string{"fear"}, l.Matches("fearless"))
}

func TestList_EachPhraseCountsOnce(t *testing.T) {
	l := New("x", "new")
	assert.Equal(t, 1, l.Count("new new new"))
}

func TestContainsAny(t *testing.T) {
	assert.True(t, ContainsAny("Should I change JOBS?", "job", "career"))
	assert.False(t, ContainsAny("paint the room", "job", "career"))
	assert.False(t, ContainsAny("anything"))
}

func TestTable_FirstMatchIsOrderDependent(t *testing.T) {
	tbl := Table{
		New("career", "career"),
		New("financial", "financial"),
	}
	got, ok := tbl.FirstMatch("financial impact of a career move")
	assert.True(t, ok)
	assert.Equal(t, "career", got.Name)

	_, ok = tbl.FirstMatch("paint the room")
	assert.False(t, ok)

	assert.Equal(t, []int{1, 1}, tbl.Counts("financial impact of a career move"))
}
