package builder

import (
	"strconv"
	"sync"

	"github.com/google/uuid"
)

// IDGenerator hands out fresh identifiers. Implementations must never repeat a value.
type IDGenerator interface {
	QuestionID() string
	OptionID() string
}

// UUIDGenerator produces random prefixed ids.
type UUIDGenerator struct{}

func NewUUIDGenerator() UUIDGenerator {
	return UUIDGenerator{}
}

func (UUIDGenerator) QuestionID() string {
	return "q_" + uuid.New().String()
}

func (UUIDGenerator) OptionID() string {
	return "o_" + uuid.New().String()
}

// SequenceGenerator produces q1, q2, ... and o1, o2, ... for deterministic tests and fixtures.
type SequenceGenerator struct {
	mu        sync.Mutex
	questions int
	options   int
}

func NewSequenceGenerator() *SequenceGenerator {
	return &SequenceGenerator{}
}

func (g *SequenceGenerator) QuestionID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.questions++
	return "q" + strconv.Itoa(g.questions)
}

func (g *SequenceGenerator) OptionID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.options++
	return "o" + strconv.Itoa(g.options)
}
