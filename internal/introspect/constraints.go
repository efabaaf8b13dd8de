// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package introspect

import (
	"strconv"
	"strings"

	"rivaas.dev/typegraph/ir"
)

// ConstraintsFromValidateTag extracts validation constraints from a
// `validate` tag value. Both front-ends share this convention.
//
// Supported: min/gte, max/lte, gt, lt, minlen/minLength, maxlen/maxLength,
// len, pattern, oneof, alphanum.
//
// pattern must be the last key in the tag: a regex may contain commas, so
// it consumes the remainder of the tag instead of a comma-split segment.
func ConstraintsFromValidateTag(v string) []ir.Constraint {
	if v == "" {
		return nil
	}

	var pattern string
	if i := strings.Index(v, "pattern="); i >= 0 {
		pattern = v[i+len("pattern="):]
		v = v[:i]
	}

	var out []ir.Constraint

	for part := range strings.SplitSeq(v, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		switch {
		case strings.HasPrefix(part, "min="):
			if x, err := strconv.ParseFloat(strings.TrimPrefix(part, "min="), 64); err == nil {
				out = append(out, ir.Min(x))
			}
		case strings.HasPrefix(part, "gte="):
			if x, err := strconv.ParseFloat(strings.TrimPrefix(part, "gte="), 64); err == nil {
				out = append(out, ir.Min(x))
			}
		case strings.HasPrefix(part, "max="):
			if x, err := strconv.ParseFloat(strings.TrimPrefix(part, "max="), 64); err == nil {
				out = append(out, ir.Max(x))
			}
		case strings.HasPrefix(part, "lte="):
			if x, err := strconv.ParseFloat(strings.TrimPrefix(part, "lte="), 64); err == nil {
				out = append(out, ir.Max(x))
			}
		case strings.HasPrefix(part, "gt="):
			if x, err := strconv.ParseFloat(strings.TrimPrefix(part, "gt="), 64); err == nil {
				out = append(out, ir.ExclusiveMin(x))
			}
		case strings.HasPrefix(part, "lt="):
			if x, err := strconv.ParseFloat(strings.TrimPrefix(part, "lt="), 64); err == nil {
				out = append(out, ir.ExclusiveMax(x))
			}
		case strings.HasPrefix(part, "minlen=") || strings.HasPrefix(part, "minLength="):
			if x, err := strconv.Atoi(strings.TrimPrefix(strings.TrimPrefix(part, "minlen="), "minLength=")); err == nil {
				out = append(out, ir.MinLength(x))
			}
		case strings.HasPrefix(part, "maxlen=") || strings.HasPrefix(part, "maxLength="):
			if x, err := strconv.Atoi(strings.TrimPrefix(strings.TrimPrefix(part, "maxlen="), "maxLength=")); err == nil {
				out = append(out, ir.MaxLength(x))
			}
		case strings.HasPrefix(part, "len="):
			if x, err := strconv.Atoi(strings.TrimPrefix(part, "len=")); err == nil {
				out = append(out, ir.MinLength(x), ir.MaxLength(x))
			}
		case strings.HasPrefix(part, "oneof="):
			vals := strings.Fields(strings.TrimPrefix(part, "oneof="))
			if len(vals) > 0 {
				out = append(out, ir.OneOf(vals...))
			}
		case part == "alphanum":
			out = append(out, ir.Pattern("^[a-zA-Z0-9]+$"))
		}
	}

	if pattern != "" {
		out = append(out, ir.Pattern(pattern))
	}

	return out
}
