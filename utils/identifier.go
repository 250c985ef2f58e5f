// utils/identifier.go
package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// UnknownTypeCode marks service types with no letter assigned.
const UnknownTypeCode = "?"

var typeCodes = map[string]string{
	"calibracion":   "C",
	"ensayo":        "E",
	"mantenimiento": "M",
	"verificacion":  "V",
}

// TypeCode resolves the single-letter code for a service type.
func TypeCode(workOrderType string) string {
	if code, ok := typeCodes[strings.ToLower(strings.TrimSpace(workOrderType))]; ok {
		return code
	}
	return UnknownTypeCode
}

// FormatCustomID builds the human-readable identifier
// "{YY}{MM}{DD}{N} {T} {client_code}".
func FormatCustomID(date time.Time, sequence int, workOrderType, clientCode string) string {
	return fmt.Sprintf("%s%d %s %s", date.Format("060102"), sequence, TypeCode(workOrderType), clientCode)
}

// CustomIDParts is the decoded form of a custom identifier.
type CustomIDParts struct {
	Date       time.Time
	Sequence   int
	TypeCode   string
	ClientCode string
}

// DecodeCustomID splits an identifier back into its parts.
func DecodeCustomID(customID string) (CustomIDParts, error) {
	fields := strings.SplitN(customID, " ", 3)
	if len(fields) != 3 {
		return CustomIDParts{}, fmt.Errorf("malformed custom id %q", customID)
	}

	dateSeq := fields[0]
	if len(dateSeq) < 7 {
		return CustomIDParts{}, fmt.Errorf("malformed custom id %q", customID)
	}

	date, err := time.Parse("060102", dateSeq[:6])
	if err != nil {
		return CustomIDParts{}, fmt.Errorf("malformed custom id %q: %v", customID, err)
	}

	sequence, err := strconv.Atoi(dateSeq[6:])
	if err != nil || sequence < 1 {
		return CustomIDParts{}, fmt.Errorf("malformed custom id %q", customID)
	}

	return CustomIDParts{
		Date:       date,
		Sequence:   sequence,
		TypeCode:   fields[1],
		ClientCode: fields[2],
	}, nil
}

// NextSequence returns the smallest positive integer not used by any of the
// given same-day identifiers. Unparseable identifiers are skipped. The result
// is only a candidate: uniqueness is enforced by the custom_id unique index,
// and callers retry on a conflict.
func NextSequence(existing []string) int {
	used := make(map[int]bool, len(existing))
	for _, id := range existing {
		parts, err := DecodeCustomID(id)
		if err != nil {
			continue
		}
		used[parts.Sequence] = true
	}
	n := 1
	for used[n] {
		n++
	}
	return n
}
