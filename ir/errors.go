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

package ir

import "fmt"

// UnsupportedTypeError reports a classifier that could not be mapped to any
// IR node. Given the universal-object fallback this should be unreachable;
// it is guarded explicitly all the same.
type UnsupportedTypeError struct {
	// TypeName names the offending type.
	TypeName string

	// Reason describes why the type could not be resolved.
	Reason string
}

func (e *UnsupportedTypeError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("typegraph: unsupported type %q", e.TypeName)
	}
	return fmt.Sprintf("typegraph: unsupported type %q: %s", e.TypeName, e.Reason)
}

// MissingNodeError reports a TypeID referenced by the graph but absent from
// its node map. This indicates an introspection bug and is never silently
// defaulted.
type MissingNodeError struct {
	ID TypeID
}

func (e *MissingNodeError) Error() string {
	return fmt.Sprintf("typegraph: no node registered for %q", e.ID)
}
