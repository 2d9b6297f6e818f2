package order

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"sync"
	"time"

	"supplyhub/internal/pkg/errs"
)

const numberSuffixes = 1000

var numberPattern = regexp.MustCompile(`^ORD-[0-9]+-[0-9]{1,3}$`)

// Number is the human-facing order reference, ORD-<unix-millis>-<0..999>.
// The suffix is not zero padded.
type Number string

func ParseNumber(s string) (Number, error) {
	n := Number(s)
	if err := n.Validate(); err != nil {
		return "", err
	}
	return n, nil
}

func (n Number) Validate() error {
	if !numberPattern.MatchString(string(n)) {
		return errs.NewValueIsInvalidErrorWithCause("orderNumber", fmt.Errorf("%q does not match ORD-<millis>-<suffix>", string(n)))
	}
	return nil
}

func (n Number) String() string {
	return string(n)
}

// NumberGenerator hands out order numbers that are unique within the
// process. Within one millisecond every suffix is used at most once; once a
// millisecond is exhausted the generator moves on to the next one. Uniqueness
// across processes is left to the store's unique index.
type NumberGenerator struct {
	mu     sync.Mutex
	now    func() time.Time
	intn   func(n int) int
	millis int64
	used   map[int]struct{}
}

func NewNumberGenerator() *NumberGenerator {
	return newNumberGenerator(time.Now, rand.IntN)
}

func newNumberGenerator(now func() time.Time, intn func(n int) int) *NumberGenerator {
	return &NumberGenerator{
		now:  now,
		intn: intn,
		used: make(map[int]struct{}, numberSuffixes),
	}
}

func (g *NumberGenerator) Next() Number {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := g.now().UnixMilli()
	if ms > g.millis {
		g.millis = ms
		clear(g.used)
	}
	if len(g.used) == numberSuffixes {
		g.millis++
		clear(g.used)
	}

	suffix := g.intn(numberSuffixes)
	for {
		if _, taken := g.used[suffix]; !taken {
			break
		}
		suffix = (suffix + 1) % numberSuffixes
	}
	g.used[suffix] = struct{}{}

	return Number(fmt.Sprintf("ORD-%d-%d", g.millis, suffix))
}
