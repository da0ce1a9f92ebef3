package accounting

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatEntryNumber renders an entry number as "PREFIX-YEAR-NNNNN". The
// fixed-width zero-padded sequence makes lexical and numeric order agree,
// which the ledger relies on for deterministic tie-breaking.
func FormatEntryNumber(prefix string, year int, seq int64) string {
	return fmt.Sprintf("%s-%d-%05d", prefix, year, seq)
}

// ParseEntrySequence extracts the numeric sequence from an entry number.
// A malformed number yields sequence 0 with ok false; callers treat that as
// "start from 1".
func ParseEntrySequence(entryNo string) (int64, bool) {
	idx := strings.LastIndex(entryNo, "-")
	if idx < 0 || idx == len(entryNo)-1 {
		return 0, false
	}
	seq, err := strconv.ParseInt(entryNo[idx+1:], 10, 64)
	if err != nil || seq < 0 {
		return 0, false
	}
	return seq, true
}
