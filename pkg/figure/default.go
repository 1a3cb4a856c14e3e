package figure

// DefaultManifest returns the figures of the paper, with paths relative to the results
// directory of the benchmark harness.
func DefaultManifest() *Manifest {
	return &Manifest{Figures: []Spec{
		{
			Name:    "latency-breakdown",
			Kind:    KindStageBreakdown,
			Inputs:  []string{"benchmark_2_20.csv"},
			Output:  "latency_breakdown_stacked_bar.png",
			Columns: 3,
			Width:   18,
			Height:  5.5,
		},
		{
			Name:         "micro-online-runtime",
			Kind:         KindStageBreakdown,
			Inputs:       []string{"micro/online_statistic_summary.csv"},
			Output:       "micro/micro_online_runtime.png",
			Columns:      2,
			LegendEach:   true,
			RotateLabels: true,
			Width:        16,
			Height:       10,
		},
		{
			Name:        "vary-intersection",
			Kind:        KindIntersectionSweep,
			Inputs:      []string{"vary_inter/vary_inter_summary.csv"},
			Output:      "vary_inter/vary_inter_performance.png",
			XTickLabels: []string{"1", "10%", "20%", "30%", "40%", "50%", "60%", "70%", "80%", "90%", "100%"},
			OfflineYMax: 600,
			Width:       18,
			Height:      5,
		},
		{
			Name:        "online-compare",
			Kind:        KindSchemeBars,
			Inputs:      []string{"compare/scheme_compare_online.csv"},
			Output:      "compare/onlinetime_comparison.png",
			SkipLines:   1,
			XLabel:      "Receiver Data Size",
			YLabel:      "Online Time (s)",
			LegendTitle: "Scheme",
			Width:       8,
			Height:      5,
		},
		{
			Name:   "performance-bars",
			Kind:   KindSchemeBars,
			Inputs: []string{"对比结果.xlsx - Sheet1.csv"},
			Output: "performance_comparison_bar_chart.png",
			Colors: map[string]string{SchemeOurs: "#4c72b0", SchemeAPSI: "#dd8452"},
		},
		{
			Name:   "apsi-comparison",
			Kind:   KindComparison,
			Inputs: []string{"APSI_Performance.csv", "Ourscheme_Performance.csv"},
			Output: "compare/" + MetricPlaceholder + "_comparison.png",
		},
	}}
}
