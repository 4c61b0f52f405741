package alias_test

import (
	"testing"

	"github.com/arcsight-ai/arcsight/internal/domain"
	"github.com/arcsight-ai/arcsight/internal/domain/alias"
	"github.com/stretchr/testify/assert"
)

func TestResolve_ExactMatch(t *testing.T) {
	r := alias.New(domain.AliasTable{"@config": "src/config"})
	target, outcome := r.Resolve("@config")
	assert.Equal(t, alias.Matched, outcome)
	assert.Equal(t, "src/config", target)
}

func TestResolve_WildcardMatch(t *testing.T) {
	r := alias.New(domain.AliasTable{"@/*": "src/*"})
	target, outcome := r.Resolve("@/utils/math")
	assert.Equal(t, alias.Matched, outcome)
	assert.Equal(t, "src/utils/math", target)
}

func TestResolve_NoMatch(t *testing.T) {
	r := alias.New(domain.AliasTable{"@/*": "src/*"})
	_, outcome := r.Resolve("./relative")
	assert.Equal(t, alias.NoMatch, outcome)
}

func TestResolve_AmbiguousWhenTwoPatternsMatch(t *testing.T) {
	r := alias.New(domain.AliasTable{
		"@/*":       "src/*",
		"@/utils/*": "src/utils/*",
	})
	_, outcome := r.Resolve("@/utils/math")
	assert.Equal(t, alias.Ambiguous, outcome)
}

func TestResolve_EmptyTableAlwaysNoMatch(t *testing.T) {
	r := alias.New(nil)
	_, outcome := r.Resolve("@/anything")
	assert.Equal(t, alias.NoMatch, outcome)
}

func TestResolve_NilResolverAlwaysNoMatch(t *testing.T) {
	var r *alias.Resolver
	_, outcome := r.Resolve("@/anything")
	assert.Equal(t, alias.NoMatch, outcome)
}
