package repo

import "github.com/regsight/regsight-core/internal/models"

// SeedRPIs returns the bootstrap indicator catalogue used until the NRA data
// pipeline lands. Values mirror the current national scorecard extract.
func SeedRPIs() []*models.RPI {
	return []*models.RPI{
		{
			ID:                "1",
			Function:          models.FunctionMarketAuthorization,
			Code:              "MA-RPI-01",
			Description:       "Percentage of marketing authorization applications finalized within legislated timeframes",
			NumeratorLogic:    "Count of MA applications finalized within target days",
			DenominatorLogic:  "Total MA applications finalized in the period",
			Baseline:          75,
			Target:            95,
			Threshold:         85,
			CurrentValue:      82,
			Unit:              "%",
			MeasurementPeriod: models.PeriodQuarterly,
			DataSource:        "NAPAMS",
			ResponsibleRole:   "Director, R&R",
			WHOGBTLinkage:     "MA01.01 (ML4)",
			WLARelevance:      true,
			Status:            models.StatusBehind,
			Trend:             models.TrendDown,
		},
		{
			ID:                "2",
			Function:          models.FunctionPharmacovigilance,
			Code:              "PV-RPI-05",
			Description:       "Percentage of serious adverse event reports processed into VigiFlow within 30 days of receipt",
			NumeratorLogic:    "Count of serious AE reports entered within 30 days",
			DenominatorLogic:  "Total serious AE reports received in the period",
			Baseline:          80,
			Target:            100,
			Threshold:         90,
			CurrentValue:      92,
			Unit:              "%",
			MeasurementPeriod: models.PeriodMonthly,
			DataSource:        "VigiFlow",
			ResponsibleRole:   "Director, PV/PMS",
			WHOGBTLinkage:     "PV05.02 (ML4)",
			WLARelevance:      true,
			Status:            models.StatusOnTrack,
			Trend:             models.TrendUp,
		},
		{
			ID:                "3",
			Function:          models.FunctionLaboratoryTesting,
			Code:              "LT-RPI-02",
			Description:       "Average turnaround time for quality control testing of sampled products",
			NumeratorLogic:    "Sum of testing turnaround days for completed samples",
			DenominatorLogic:  "Count of samples completed in the period",
			Baseline:          45,
			Target:            20,
			Threshold:         30,
			CurrentValue:      22,
			Unit:              "Days",
			MeasurementPeriod: models.PeriodMonthly,
			DataSource:        "LIMS",
			ResponsibleRole:   "Director, Lab Services",
			WHOGBTLinkage:     "LT02.04 (ML3)",
			WLARelevance:      true,
			Status:            models.StatusAchieved,
			Trend:             models.TrendStable,
		},
		{
			ID:                "4",
			Function:          models.FunctionNationalRegulatorySystem,
			Code:              "RS-RPI-10",
			Description:       "Annual management review of the quality management system completed and documented",
			NumeratorLogic:    "Management review completed (1) or not (0)",
			DenominatorLogic:  "Reviews due in the period",
			Baseline:          0,
			Target:            1,
			Threshold:         1,
			CurrentValue:      1,
			Unit:              "Status",
			MeasurementPeriod: models.PeriodAnnual,
			DataSource:        "QMS Audit",
			ResponsibleRole:   "DG Office",
			WHOGBTLinkage:     "RS01.01 (ML4)",
			WLARelevance:      true,
			Status:            models.StatusAchieved,
			Trend:             models.TrendStable,
		},
		{
			ID:                "5",
			Function:          models.FunctionRegulatoryInspection,
			Code:              "RI-RPI-03",
			Description:       "Percentage of licensed manufacturing facilities inspected for GMP compliance per the risk-based schedule",
			NumeratorLogic:    "Count of scheduled GMP inspections completed",
			DenominatorLogic:  "Total GMP inspections scheduled for the period",
			Baseline:          60,
			Target:            90,
			Threshold:         75,
			CurrentValue:      55,
			Unit:              "%",
			MeasurementPeriod: models.PeriodQuarterly,
			DataSource:        "PIDCARMS",
			ResponsibleRole:   "Director, DER",
			WHOGBTLinkage:     "RI03.05 (ML4)",
			WLARelevance:      true,
			Status:            models.StatusRedAlert,
			Trend:             models.TrendDown,
		},
	}
}

// SeedTrends returns the historical series keyed by indicator id. Only a
// subset of indicators carries history in the bootstrap extract.
func SeedTrends() map[string][]models.TrendPoint {
	return map[string][]models.TrendPoint{
		"1": {
			{Period: "Jan", Value: 65, Target: 95},
			{Period: "Feb", Value: 70, Target: 95},
			{Period: "Mar", Value: 75, Target: 95},
			{Period: "Apr", Value: 72, Target: 95},
			{Period: "May", Value: 80, Target: 95},
			{Period: "Jun", Value: 82, Target: 95},
			{Period: "Jul", Value: 78, Target: 95},
			{Period: "Aug", Value: 82, Target: 95},
		},
	}
}

// SeedCAPAs returns the bootstrap corrective-action register.
func SeedCAPAs() []*models.CAPA {
	return []*models.CAPA{
		{
			ID:         "c1",
			RPIID:      "5",
			RootCause:  "Insufficient number of trained GMP inspectors available during Q3 due to unplanned attrition and delayed recruitment.",
			ActionPlan: "Fast-track recruitment of 3 GMP inspectors and commission refresher training for the existing cadre by end of Q4.",
			Owner:      "Head of ICT / Director DER",
			DueDate:    "2024-12-15",
			Status:     models.CAPAOpen,
		},
		{
			ID:         "c2",
			RPIID:      "1",
			RootCause:  "Backlog of legacy marketing authorization applications carried over from the previous registration system migration.",
			ActionPlan: "Dedicated backlog clearance task force with weekly disposition targets tracked at directorate level.",
			Owner:      "Director R&R",
			DueDate:    "2024-11-20",
			Status:     models.CAPAResolved,
		},
	}
}

// NewSeededRPICatalog is the default catalogue wiring used by the server and
// by tests that want realistic data.
func NewSeededRPICatalog() *RPICatalog {
	return NewRPICatalog(SeedRPIs(), SeedTrends())
}

// NewSeededCAPAStore returns a store preloaded with the bootstrap register.
func NewSeededCAPAStore() *CAPAStore {
	s := NewCAPAStore()
	s.Load(SeedCAPAs())
	return s
}
