package controller

// Cycle holds the four wired stages of one adapter cycle along with the
// Controller driving them.
type Cycle struct {
	Controller         *Controller
	Baseline           *Baseline
	RateExplore        *RateExplore
	ConcurrencyExplore *ConcurrencyExplore
	Exploit            *Exploit
}

// NewCycle builds and wires a full Baseline -> RateExplore ->
// ConcurrencyExplore -> Exploit -> Baseline cycle from per-stage configs,
// returning a Controller starting in Baseline.
func NewCycle(baselineCfg, rateCfg, concurrencyCfg, exploitCfg StageConfig) *Cycle {
	baseline := NewBaseline(baselineCfg)
	rateExplore := NewRateExplore(rateCfg)
	concurrencyExplore := NewConcurrencyExplore(concurrencyCfg)
	exploit := NewExploit(exploitCfg)

	baseline.SetNext(rateExplore)
	rateExplore.SetNext(concurrencyExplore)
	concurrencyExplore.SetNext(exploit)
	exploit.SetNext(baseline)

	return &Cycle{
		Controller:         New(baseline),
		Baseline:           baseline,
		RateExplore:        rateExplore,
		ConcurrencyExplore: concurrencyExplore,
		Exploit:            exploit,
	}
}
