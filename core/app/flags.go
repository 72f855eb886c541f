// Copyright (C) 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package app

import "github.com/cxxfe/cxxfe/core/log"

// LogFlags holds the flags that control the behaviour of the logger.
type LogFlags struct {
	Level  log.Severity `help:"the severity to enable logging for"`
	Style  log.Style    `help:"the style of log output"`
	Stacks bool         `help:"attach stacktraces to error and higher severity log entries"`
	File   string       `help:"the file to additionally log to"`
}

// AppFlags holds the flags that are valid for any compiler invocation,
// independent of the verb selected. The compilation-specific options
// (mangling style, data model, pack alignment and so on) live on
// compilectx.Context and are bound per-verb, not here.
type AppFlags struct {
	Log         LogFlags `help:"logging flags"`
	FullHelp    bool     `help:"show the full help text" name:"fullhelp"`
	Version     bool     `help:"show the version and exit"`
	DecodeStack string   `help:"decode a crash stacktrace code and exit" name:"decodestack"`
}
