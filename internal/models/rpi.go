package models

// RegulatoryFunction is the closed set of regulatory activity categories an
// indicator can belong to. The display name is the wire value.
type RegulatoryFunction string

const (
	FunctionNationalRegulatorySystem RegulatoryFunction = "National Regulatory System"
	FunctionMarketAuthorization      RegulatoryFunction = "Market Authorization"
	FunctionPharmacovigilance        RegulatoryFunction = "Pharmacovigilance"
	FunctionMarketSurveillance       RegulatoryFunction = "Market Surveillance & Control"
	FunctionLaboratoryTesting        RegulatoryFunction = "Laboratory Testing"
	FunctionClinicalTrialOversight   RegulatoryFunction = "Clinical Trial Oversight"
	FunctionRegulatoryInspection     RegulatoryFunction = "Regulatory Inspection"
	FunctionLotRelease               RegulatoryFunction = "Lot Release"
)

// AllRegulatoryFunctions returns the eight functions in their canonical order.
// Scorecard consumers rely on every function being reported, including ones
// with no indicators.
func AllRegulatoryFunctions() []RegulatoryFunction {
	return []RegulatoryFunction{
		FunctionNationalRegulatorySystem,
		FunctionMarketAuthorization,
		FunctionPharmacovigilance,
		FunctionMarketSurveillance,
		FunctionLaboratoryTesting,
		FunctionClinicalTrialOversight,
		FunctionRegulatoryInspection,
		FunctionLotRelease,
	}
}

// PerformanceStatus is the authored health of an indicator. It is entered at
// data-capture time and never recomputed from currentValue vs target.
type PerformanceStatus string

const (
	StatusAchieved PerformanceStatus = "Achieved"
	StatusOnTrack  PerformanceStatus = "On Track"
	StatusBehind   PerformanceStatus = "Behind"
	StatusRedAlert PerformanceStatus = "Red Alert"
)

// Critical reports whether the status marks an indicator as needing
// remediation (the Red Alert / Behind subset).
func (s PerformanceStatus) Critical() bool {
	return s == StatusRedAlert || s == StatusBehind
}

// Valid reports whether s is one of the four known statuses.
func (s PerformanceStatus) Valid() bool {
	switch s {
	case StatusAchieved, StatusOnTrack, StatusBehind, StatusRedAlert:
		return true
	}
	return false
}

// MeasurementPeriod is how often an indicator is measured.
type MeasurementPeriod string

const (
	PeriodMonthly   MeasurementPeriod = "Monthly"
	PeriodQuarterly MeasurementPeriod = "Quarterly"
	PeriodAnnual    MeasurementPeriod = "Annual"
)

// TrendDirection is the authored movement of an indicator since the last
// measurement.
type TrendDirection string

const (
	TrendUp     TrendDirection = "up"
	TrendDown   TrendDirection = "down"
	TrendStable TrendDirection = "stable"
)

// RPI is a Regulatory Performance Indicator: one tracked metric with its
// measurement logic, targets, and authored status. Indicators are immutable
// reference data seeded at startup.
type RPI struct {
	ID               string             `json:"id"`
	Function         RegulatoryFunction `json:"function"`
	Code             string             `json:"code"`
	Description      string             `json:"description"`
	NumeratorLogic   string             `json:"numeratorLogic"`
	DenominatorLogic string             `json:"denominatorLogic"`
	Baseline         float64            `json:"baseline"`
	Target           float64            `json:"target"`
	Threshold        float64            `json:"threshold"`
	CurrentValue     float64            `json:"currentValue"`
	Unit             string             `json:"unit"`
	// MeasurementPeriod is Monthly, Quarterly, or Annual.
	MeasurementPeriod MeasurementPeriod `json:"measurementPeriod"`
	// DataSource names the upstream system of record (e.g. "VigiFlow").
	DataSource      string `json:"dataSource"`
	ResponsibleRole string `json:"responsibleRole"`
	// WHOGBTLinkage is the WHO Global Benchmarking Tool sub-indicator code
	// this RPI evidences (e.g. "MA01.01 (ML4)"). Metadata only.
	WHOGBTLinkage string `json:"whoGbtLinkage"`
	// WLARelevance flags indicators counted towards WHO Listed Authority
	// recognition.
	WLARelevance bool              `json:"wlaRelevance"`
	Status       PerformanceStatus `json:"status"`
	Trend        TrendDirection    `json:"trend"`
}

// TrendPoint is one point in an indicator's historical series: the observed
// value and the target that applied in that period.
type TrendPoint struct {
	Period string  `json:"period"`
	Value  float64 `json:"value"`
	Target float64 `json:"target"`
}

// RPIListRequest carries the optional filters for listing indicators.
type RPIListRequest struct {
	Function string `form:"function" json:"function,omitempty"`
	Status   string `form:"status" json:"status,omitempty"`
	Critical bool   `form:"critical" json:"critical,omitempty"`
	Query    string `form:"q" json:"q,omitempty"`
}

// RPIListResponse is the envelope for indicator listings.
type RPIListResponse struct {
	RPIs  []*RPI `json:"rpis"`
	Total int    `json:"total"`
}

// TrendResponse is the envelope for an indicator's trend series.
type TrendResponse struct {
	RPIID  string       `json:"rpiId"`
	Points []TrendPoint `json:"points"`
}
