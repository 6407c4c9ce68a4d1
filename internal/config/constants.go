package config

import "github.com/jdsia/CSADPRG-MCO2/pkg/contracts"

// Application constants
const (
	AppName    = "floodreport"
	AppVersion = contracts.Version

	// Input
	DefaultInputFile = "dpwh_flood_control_projects.csv"

	// Output files, written into the output directory
	DefaultOutputDir     = "."
	EfficiencyReportFile = "report1_regional_efficiency.csv"
	ContractorReportFile = "report2_contractor_ranking.csv"
	TrendReportFile      = "report3_annual_trends.csv"
	SummaryFile          = "summary.json"
	WorkbookFile         = "reports.xlsx"

	// Funding year window (inclusive)
	DefaultStartYear = 2021
	DefaultEndYear   = 2023

	// Report parameters
	DefaultDelayThresholdDays         = 30
	DefaultReliabilityDelayNormalizer = 90.0
	DefaultMinContractorProjects      = 5
	DefaultContractorTopN             = 15
	DefaultHighRiskThreshold          = 50.0
	DefaultBaselineYear               = 2021
	DefaultPreviewRows                = 2

	// Log Settings
	DefaultLogLevel = "info"
	DefaultLogFile  = "logs/floodreport.log"
)
