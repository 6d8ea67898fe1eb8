// Copyright (c) 2023 - for information on the respective copyright owner
// see the NOTICE file and/or the repository at
// https://github.com/interledger-labs/ilp-node
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

package ilp

import (
	"regexp"
	"strings"
)

// Constraints on interledger addresses. They are enforced by ParseAddress
// and WithSegment, never merely documented.
const (
	// AddressMaxLength is the maximum total length of an address string,
	// including separators and a trailing prefix marker.
	AddressMaxLength = 1023

	// AddressMaxSegments is the maximum number of segments in an address.
	AddressMaxSegments = 32

	addressSeparator = "."
)

// addressSegmentPattern is the restricted character set allowed within a
// single segment. Separators can never occur inside a segment.
var addressSegmentPattern = regexp.MustCompile(`^[A-Za-z0-9_~-]+$`)

// Address is an opaque hierarchical interledger identifier: a scheme or
// allocation prefix followed by ledger-specific segments, optionally ending
// with a local account segment.
//
// An address whose string representation carries a trailing separator
// denotes a prefix (a ledger or connector scope) and must not be used as a
// final payment destination.
//
// The zero value is not a valid address; construct addresses only through
// ParseAddress or WithSegment.
type Address struct {
	value string
}

// ParseAddress parses and validates the given string as an interledger
// address. Parsing is pure: it never touches I/O and never silently
// truncates malformed input.
//
// If there is an error, it will be an APIError with code ErrInvalidAddress.
func ParseAddress(s string) (Address, APIError) {
	if s == "" {
		return Address{}, NewAPIErrInvalidAddress(s, "address must not be empty")
	}
	if len(s) > AddressMaxLength {
		return Address{}, NewAPIErrInvalidAddress(s, "address exceeds maximum length")
	}

	body := s
	if strings.HasSuffix(s, addressSeparator) {
		body = s[:len(s)-1]
		if body == "" {
			return Address{}, NewAPIErrInvalidAddress(s, "prefix must contain at least one segment")
		}
	}
	segments := strings.Split(body, addressSeparator)
	if len(segments) > AddressMaxSegments {
		return Address{}, NewAPIErrInvalidAddress(s, "address exceeds maximum segment count")
	}
	for _, segment := range segments {
		if segment == "" {
			return Address{}, NewAPIErrInvalidAddress(s, "segments must not be empty")
		}
		if !addressSegmentPattern.MatchString(segment) {
			return Address{}, NewAPIErrInvalidAddress(s, "segments must contain only letters, digits, '_', '~' and '-'")
		}
	}
	return Address{value: s}, nil
}

// String returns the canonical string representation of the address. It
// round-trips through ParseAddress unchanged.
func (a Address) String() string {
	return a.value
}

// IsZero reports whether the address is the (invalid) zero value.
func (a Address) IsZero() bool {
	return a.value == ""
}

// IsPrefix reports whether the address denotes a ledger or connector scope
// rather than a terminal account.
func (a Address) IsPrefix() bool {
	return strings.HasSuffix(a.value, addressSeparator)
}

// IsPrefixOf reports whether other starts with this address's segments,
// segment-aligned. It is not a raw substring match: "g.us" is a prefix of
// "g.us.bob" but not of "g.usd.bob". An address is always a prefix of
// itself.
func (a Address) IsPrefixOf(other Address) bool {
	if a.value == other.value {
		return true
	}
	scope := a.value
	if !strings.HasSuffix(scope, addressSeparator) {
		scope += addressSeparator
	}
	return strings.HasPrefix(other.value, scope)
}

// WithSegment appends the given segment to a prefix address, producing a
// leaf account address.
//
// If there is an error, it will be an APIError with code ErrInvalidAddress:
// when the address is not a prefix, when the segment violates the charset,
// or when the result would exceed the length or segment count constraints.
func (a Address) WithSegment(segment string) (Address, APIError) {
	if !a.IsPrefix() {
		return Address{}, NewAPIErrInvalidAddress(a.value, "segments can be appended only to a prefix")
	}
	if !addressSegmentPattern.MatchString(segment) {
		return Address{}, NewAPIErrInvalidAddress(segment, "segments must contain only letters, digits, '_', '~' and '-'")
	}
	return ParseAddress(a.value + segment)
}
