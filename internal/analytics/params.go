package analytics

import (
	"math"

	"github.com/jdsia/CSADPRG-MCO2/internal/config"
)

// EfficiencySentinel is the raw efficiency score of a group with positive
// median savings and no average delay. It ranks above every finite score.
const EfficiencySentinel = math.MaxFloat64

// Params holds the tunable constants of the report generators.
type Params struct {
	// DelayThresholdDays: a project is "delayed" when its delay exceeds this.
	DelayThresholdDays int
	// ReliabilityDelayNormalizer: average delay at which the delay factor reaches zero.
	ReliabilityDelayNormalizer float64
	// MinContractorProjects: contractors with fewer projects are not ranked.
	MinContractorProjects int
	// ContractorTopN caps the ranking length.
	ContractorTopN int
	// HighRiskThreshold: indices below it are flagged High Risk.
	HighRiskThreshold float64
	// BaselineYear is the reference year for the year-over-year column.
	BaselineYear int
}

// DefaultParams returns the standard report parameters.
func DefaultParams() Params {
	return Params{
		DelayThresholdDays:         config.DefaultDelayThresholdDays,
		ReliabilityDelayNormalizer: config.DefaultReliabilityDelayNormalizer,
		MinContractorProjects:      config.DefaultMinContractorProjects,
		ContractorTopN:             config.DefaultContractorTopN,
		HighRiskThreshold:          config.DefaultHighRiskThreshold,
		BaselineYear:               config.DefaultBaselineYear,
	}
}

// ParamsFromConfig builds Params from the reports configuration section.
func ParamsFromConfig(cfg config.ReportsConfig) Params {
	return Params{
		DelayThresholdDays:         cfg.DelayThresholdDays,
		ReliabilityDelayNormalizer: cfg.ReliabilityDelayNormalizer,
		MinContractorProjects:      cfg.MinContractorProjects,
		ContractorTopN:             cfg.ContractorTopN,
		HighRiskThreshold:          cfg.HighRiskThreshold,
		BaselineYear:               cfg.BaselineYear,
	}
}
