// Package config loads Quillpad settings.
//
// Settings come from four sources, higher ones overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Command Line Flags      │  ← applied by cmd/quillpad
//	├─────────────────────────────┤
//	│  3. Environment Variables   │  ← QUILLPAD_*
//	├─────────────────────────────┤
//	│  2. Config File             │  ← ~/.config/quillpad/config.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │
//	└─────────────────────────────┘
//
// The config file may be TOML (default) or YAML (.yaml, .yml). A missing
// file is not an error.
//
// # Basic Usage
//
//	cfg, err := config.Load("")
//	if err != nil {
//		return err
//	}
//	enc, _ := cfg.Encoder()
//	s := engine.New(engine.WithTabWidth(cfg.Editor.TabWidth), engine.WithEncoder(enc))
//
// # Sub-packages
//
//   - loader: TOML, YAML and environment sources plus DeepMerge
package config
