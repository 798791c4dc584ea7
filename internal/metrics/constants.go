package metrics

// Namespace prefixes every metric of the service
const Namespace = "ao_selector"

// Price fetch metric names
const (
	MetricNamePriceRounds        = "price_fetch_rounds_total"
	MetricNamePriceQuotes        = "price_quotes_resolved_total"
	MetricNamePriceFetchAborted  = "price_fetch_aborted_total"
	MetricNamePriceFetchDuration = "price_fetch_duration_seconds"
)

// Selection metric names
const (
	MetricNameSlotsSelected     = "slots_selected_total"
	MetricNameSelectionDuration = "selection_duration_seconds"
	MetricNameVariantsSkipped   = "variants_skipped_total"
)

// Help text
const (
	HelpTextPriceRounds        = "Market price rounds by outcome"
	HelpTextPriceQuotes        = "Price quotes resolved from the market service"
	HelpTextPriceFetchAborted  = "Price fetches stopped after too many rounds without a match"
	HelpTextPriceFetchDuration = "Duration of a complete price fetch in seconds"
	HelpTextSlotsSelected      = "Build slots selected by result"
	HelpTextSelectionDuration  = "Duration of a SelectBuild call in seconds"
	HelpTextVariantsSkipped    = "Variants left out of an enumeration because their power could not be computed"
)

// Label names
const (
	LabelOutcome  = "outcome"
	LabelResult   = "result"
	LabelStrategy = "strategy"
)

// Round outcomes
const (
	OutcomeProgress = "progress"
	OutcomeMiss     = "miss"
	OutcomeError    = "error"
)

// Slot results
const (
	ResultPriced   = "priced"
	ResultDegraded = "degraded"
)

// Buckets for fetches that include inter-round delays
var FetchLatencyBuckets = []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120}
