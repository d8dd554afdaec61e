// Package config provides the configuration for frame tables.
//
// A FrameConfig describes how one table behaves: its name in logs and
// metrics, the default padding policy for short columns, whether load
// operations lock by default, the initial index capacity, the default seed
// for reproducible sampling and the observability switches.
//
// # Sections
//
//   - Core: name, default_padding, lock_policy, initial_capacity
//   - Sampling: seed used by seeded random selection when the caller passes zero
//   - Observability: enable_metrics, log_level, log_encoding, development,
//     trace_sampling_rate
//
// # Usage
//
// ## Defaults
//
//	cfg := config.NewFrameConfig("prices")
//	cfg.DefaultPadding = config.PaddingDontPad
//
//	if err := cfg.Validate(); err != nil {
//		log.Fatal(err)
//	}
//
// ## Loading from YAML
//
//	cfg, err := config.LoadFrameConfig("frame.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	tbl, err := frame.NewFromConfig[string](cfg)
//
// A minimal file:
//
//	name: prices
//	default_padding: pad_with_nans
//	lock_policy: lock
//	initial_capacity: 4096
//	sampling:
//	  seed: ${FRAME_SEED}
//	observability:
//	  enable_metrics: true
//	  log_level: info
//	  log_encoding: json
//	  trace_sampling_rate: 0.25
//
// ## Environment Variable Substitution
//
// Any ${VAR_NAME} in a file is replaced with the value of the environment
// variable before parsing. Unset variables become empty strings.
package config
