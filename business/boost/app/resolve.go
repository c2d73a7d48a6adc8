package app

import (
	"fmt"
	"strings"

	"github.com/fd1az/reg-voting-power/business/boost/domain"
	"github.com/fd1az/reg-voting-power/internal/apperror"
	"github.com/fd1az/reg-voting-power/internal/config"
)

// ResolveDexConfigs converts the raw per-DEX settings into tagged
// DexBoostConfig values keyed by lower-case DEX name.
func ResolveDexConfigs(settings map[string]config.DexBoostSettings) (map[string]domain.DexBoostConfig, error) {
	out := make(map[string]domain.DexBoostConfig, len(settings))
	for name, s := range settings {
		cfg, err := resolveDex(s)
		if err != nil {
			return nil, apperror.Wrap(err, apperror.CodeConfigurationError, "boost.dexs."+name)
		}
		out[strings.ToLower(name)] = cfg
	}
	return out, nil
}

func resolveDex(s config.DexBoostSettings) (domain.DexBoostConfig, error) {
	if s.Legacy != nil {
		return domain.NewLegacyDexConfig(s.Legacy.Tokens, s.Legacy.FactorsDecimal())
	}

	var v3 *domain.BoostConfig
	if s.V3 != nil {
		bc, err := resolveV3(*s.V3)
		if err != nil {
			return domain.DexBoostConfig{}, err
		}
		v3 = &bc
	}
	return domain.NewStructuredDexConfig(s.DefaultDecimal(), v3), nil
}

// resolveV3 parses enum fields strictly unless the formula is none, in which
// case the remaining fields are carried as-is and never inspected.
func resolveV3(s config.V3BoostSettings) (domain.BoostConfig, error) {
	formula, err := domain.ParseDecayFormula(s.DecayFormula)
	if err != nil {
		return domain.BoostConfig{}, err
	}

	mode := domain.Mode(strings.ToLower(s.Mode))
	source := domain.SourceValue(strings.ToLower(s.SourceValue))
	if formula != domain.FormulaNone {
		if mode, err = domain.ParseMode(s.Mode); err != nil {
			return domain.BoostConfig{}, err
		}
		if source, err = domain.ParseSourceValue(s.SourceValue); err != nil {
			return domain.BoostConfig{}, err
		}
	}

	steps := make([]domain.Step, len(s.Steps))
	for i, st := range s.Steps {
		steps[i] = domain.Step{Threshold: st.ThresholdDecimal(), Boost: st.BoostDecimal()}
	}

	var outOfRange *bool
	if s.OutOfRangeEnabled != nil {
		v := *s.OutOfRangeEnabled
		outOfRange = &v
	}

	return domain.BoostConfig{
		SourceValue:       source,
		Mode:              mode,
		DecayFormula:      formula,
		MaxBoost:          config.OptionalDecimal(s.MaxBoost),
		MinBoost:          config.OptionalDecimal(s.MinBoost),
		InactiveBoost:     config.OptionalDecimal(s.InactiveBoost),
		Exponent:          config.OptionalDecimal(s.Exponent),
		RangeWidthFactor:  config.OptionalDecimal(s.RangeWidthFactor),
		DecaySlices:       config.OptionalDecimal(s.DecaySlices),
		DecaySlicesUp:     config.OptionalDecimal(s.DecaySlicesUp),
		DecaySlicesDown:   config.OptionalDecimal(s.DecaySlicesDown),
		SliceWidth:        config.OptionalDecimal(s.SliceWidth),
		OutOfRangeEnabled: outOfRange,
		Steps:             steps,
	}, nil
}

func unknownDex(name string) error {
	return apperror.NotFound(apperror.CodeUnknownDex, fmt.Sprintf("dex %q", name))
}
