package apexdoc

import (
	"strings"

	"github.com/custodia-labs/apexspec-cli/internal/core/domain"
)

// ParseTags splits a /** ... */ block into ordered tags.
//
// Lines without a tag continue the previous tag's value. Text before the
// first tag becomes a description tag unless one is given explicitly.
func ParseTags(comment string) []domain.DocTag {
	body := strings.TrimPrefix(strings.TrimSpace(comment), "/**")
	body = strings.TrimSuffix(body, "*/")

	var tags []domain.DocTag
	var lead []string
	for _, raw := range strings.Split(body, "\n") {
		line := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(raw), "*"))
		if line == "" {
			continue
		}

		if m := tagLine.FindStringSubmatch(line); m != nil {
			tags = append(tags, domain.DocTag{Key: m[1], Value: strings.TrimSpace(m[2])})
			continue
		}

		if len(tags) == 0 {
			lead = append(lead, line)
			continue
		}
		last := &tags[len(tags)-1]
		if last.Value == "" {
			last.Value = line
		} else {
			last.Value += " " + line
		}
	}

	if len(lead) > 0 && !hasTag(tags, domain.DescriptionTag) {
		description := domain.DocTag{Key: domain.DescriptionTag, Value: strings.Join(lead, " ")}
		tags = append([]domain.DocTag{description}, tags...)
	}
	return tags
}

func hasTag(tags []domain.DocTag, key string) bool {
	for _, t := range tags {
		if strings.EqualFold(t.Key, key) {
			return true
		}
	}
	return false
}
