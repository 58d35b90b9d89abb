// Package assemble implements the topic assembler: it runs the predicate
// evaluator over a candidate population for one accepted template, ranks and
// bounds the matching set, and emits a topic ready for the discovery
// surface. Evaluation fans out across goroutines under a configurable
// limit; results are merged in population order so the output is identical
// regardless of scheduling.
package assemble

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"nichefeed/internal/filter"
	"nichefeed/internal/template"
	"nichefeed/internal/vocab"
)

// ErrUnvalidatedTemplate reports the one programming error in this package:
// assembly invoked without a validator-accepted template. It is a
// precondition violation, not a runtime condition to recover from.
var ErrUnvalidatedTemplate = errors.New("assemble requires a validator-accepted template")

// DefaultConcurrency bounds evaluation fan-out when the caller does not.
const DefaultConcurrency = 8

// Candidate is one record under test: its identity plus the read-only
// snapshot the evaluator sees.
type Candidate struct {
	ProductID string
	Snapshot  filter.Snapshot
}

// Topic is the realized output of running a template against a population.
type Topic struct {
	TopicKey    string    `yaml:"topic_key" json:"topic_key"`
	RunID       string    `yaml:"run_id" json:"run_id"`
	GeneratedAt time.Time `yaml:"generated_at" json:"generated_at"`

	Title       template.Bilingual `yaml:"title" json:"title"`
	Description template.Bilingual `yaml:"description" json:"description"`
	Insight     template.Bilingual `yaml:"insight" json:"insight"`
	Tag         template.Bilingual `yaml:"tag" json:"tag"`
	TagColor    string             `yaml:"tag_color" json:"tag_color"`

	CuratorRole       template.Bilingual    `yaml:"curator_role" json:"curator_role"`
	GenerationPattern template.CurationType `yaml:"generation_pattern" json:"generation_pattern"`
	FilterRules       filter.RuleSet        `yaml:"filter_rules" json:"filter_rules"`

	ProductIDs   []string `yaml:"product_ids" json:"product_ids"`
	ProductCount int      `yaml:"product_count" json:"product_count"`
	CTAText      string   `yaml:"cta_text" json:"cta_text"`
}

// InfeasibleError reports a match count below the template's minimum. It is
// a normal runtime outcome, not a failure of the template or the data; the
// caller decides whether to relax thresholds or drop the topic. The
// assembler never widens the rule set on its own.
type InfeasibleError struct {
	TemplateKey string
	Matched     int
	MinRequired int
}

func (e *InfeasibleError) Error() string {
	return fmt.Sprintf("topic %s infeasible: %d candidates matched, %d required",
		e.TemplateKey, e.Matched, e.MinRequired)
}

// Assembler runs populations against accepted templates.
type Assembler struct {
	logger      *zap.Logger
	concurrency int
}

// NewAssembler builds an assembler. A non-positive concurrency falls back
// to DefaultConcurrency.
func NewAssembler(logger *zap.Logger, concurrency int) *Assembler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Assembler{logger: logger, concurrency: concurrency}
}

// Assemble evaluates every candidate against the accepted template's rules
// and emits the bounded, ordered topic. Matches are ranked by the first
// revenue-like numeric field the rules constrain (descending) with product
// ID ascending as the final tie-break; absent a revenue-like field the
// population order is kept and truncation falls back to product ID order.
// lang selects the CTA side ("zh" or "en").
func (a *Assembler) Assemble(ctx context.Context, accepted *template.Accepted, population []Candidate, lang string) (*Topic, error) {
	if !accepted.Validated() {
		return nil, ErrUnvalidatedTemplate
	}
	tpl := accepted.Template()

	matchedIdx, err := a.evaluatePopulation(ctx, tpl.FilterRules, population)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("population evaluated",
		zap.String("template", tpl.Key),
		zap.Int("population", len(population)),
		zap.Int("matched", len(matchedIdx)))

	if len(matchedIdx) < tpl.MinProducts {
		return nil, &InfeasibleError{
			TemplateKey: tpl.Key,
			Matched:     len(matchedIdx),
			MinRequired: tpl.MinProducts,
		}
	}

	matches := lo.Map(matchedIdx, func(i int, _ int) Candidate { return population[i] })
	matches = rankAndBound(matches, tpl)

	return &Topic{
		TopicKey:          tpl.Key,
		RunID:             uuid.NewString(),
		GeneratedAt:       time.Now().UTC(),
		Title:             tpl.Title,
		Description:       tpl.Description,
		Insight:           tpl.Insight,
		Tag:               tpl.Tag,
		TagColor:          tpl.TagColor,
		CuratorRole:       template.CuratorRole(tpl.CurationType),
		GenerationPattern: tpl.CurationType,
		FilterRules:       tpl.FilterRules,
		ProductIDs:        lo.Map(matches, func(c Candidate, _ int) string { return c.ProductID }),
		ProductCount:      len(matches),
		CTAText:           tpl.CTA.Pick(lang),
	}, nil
}

// evaluatePopulation fans evaluation out across goroutines bounded by the
// assembler's concurrency and returns the indices of matching candidates in
// population order. Each match test is independent and shares no mutable
// state; results land in index-addressed slots, so scheduling never affects
// the merge order.
func (a *Assembler) evaluatePopulation(ctx context.Context, rules filter.RuleSet, population []Candidate) ([]int, error) {
	matched := make([]bool, len(population))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)
	for i := range population {
		g.Go(func() error {
			ok, _ := filter.Evaluate(population[i].Snapshot, rules)
			matched[i] = ok
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var idx []int
	for i, ok := range matched {
		if ok {
			idx = append(idx, i)
		}
	}
	return idx, nil
}

// rankAndBound orders matches by the template's revenue-like field and
// truncates to max_products. Ordering is fully deterministic: revenue
// descending, then product ID ascending; with no revenue-like field in the
// rules, population order stands unless truncation is needed, in which case
// product ID ascending decides.
func rankAndBound(matches []Candidate, tpl template.CurationTemplate) []Candidate {
	group, field, hasRevenue := tpl.FilterRules.RevenueField()

	if hasRevenue {
		sort.SliceStable(matches, func(i, j int) bool {
			ri, iok := revenueOf(matches[i], group, field)
			rj, jok := revenueOf(matches[j], group, field)
			if iok != jok {
				return iok
			}
			if iok && ri != rj {
				return ri > rj
			}
			return matches[i].ProductID < matches[j].ProductID
		})
	} else if len(matches) > tpl.MaxProducts {
		sort.SliceStable(matches, func(i, j int) bool {
			return matches[i].ProductID < matches[j].ProductID
		})
	}

	if len(matches) > tpl.MaxProducts {
		matches = matches[:tpl.MaxProducts]
	}
	return matches
}

// revenueOf reads the ranking value from a candidate snapshot. The second
// return is false for a missing or mistyped value; such candidates sort
// after every real number, negative ones included.
func revenueOf(c Candidate, group vocab.Group, field string) (float64, bool) {
	v, ok := c.Snapshot.Value(group, field)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
