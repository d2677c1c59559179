package fetcher

import (
	"fmt"

	"github.com/aleister1102/assetscout/internal/config"
	"github.com/aleister1102/assetscout/internal/urlhandler"
)

// Strategy turns a target page URL into the URL actually requested
type Strategy interface {
	Name() string
	BuildURL(target string) (string, error)
}

// RelayStrategy fetches the target through a public relay described by a URL template
type RelayStrategy struct {
	name     string
	template string
}

// NewRelayStrategy validates template and returns a strategy for it
func NewRelayStrategy(name, template string) (*RelayStrategy, error) {
	if name == "" {
		return nil, fmt.Errorf("relay strategy name is empty")
	}
	if err := urlhandler.ValidateTemplate(template); err != nil {
		return nil, fmt.Errorf("relay strategy '%s': %w", name, err)
	}
	return &RelayStrategy{name: name, template: template}, nil
}

func (s *RelayStrategy) Name() string { return s.name }

func (s *RelayStrategy) BuildURL(target string) (string, error) {
	return urlhandler.ExpandTemplate(s.template, target)
}

// StrategiesFromConfig builds the ordered strategy list
func StrategiesFromConfig(cfgs []config.StrategyConfig) ([]Strategy, error) {
	strategies := make([]Strategy, 0, len(cfgs))
	for _, c := range cfgs {
		s, err := NewRelayStrategy(c.Name, c.URLTemplate)
		if err != nil {
			return nil, err
		}
		strategies = append(strategies, s)
	}
	return strategies, nil
}
