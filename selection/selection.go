// Package selection implements §4.G: matching records against a list of
// (source-ID glob, publication version, time windows) entries, as consumed
// by the stream reader's record-level filtering and loadable from the
// selection-file grammar of §6.
package selection

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/mseedgo/miniseed/errs"
	"github.com/mseedgo/miniseed/nstime"
)

// Window is a half-open time range; either bound may be nstime.Unset to
// indicate an open side.
type Window struct {
	Start nstime.NsTime
	End   nstime.NsTime
}

// overlaps reports whether w overlaps [start, end), treating nstime.Unset
// as an open bound on either side (§4.G).
func (w Window) overlaps(start, end nstime.NsTime) bool {
	wStart, wEnd := w.Start, w.End
	if wStart.IsSet() && end.IsSet() && end <= wStart {
		return false
	}
	if wEnd.IsSet() && start.IsSet() && start >= wEnd {
		return false
	}

	return true
}

// Entry is one selection list entry: a SID glob, a publication-version
// filter (0 means "any"), and a nonempty list of time windows.
type Entry struct {
	SIDGlob            string
	PublicationVersion uint8
	Windows            []Window
}

// List is an ordered selection set, matched in order per §4.G.
type List []Entry

// Match implements §4.G's match operation: it returns the first entry
// whose glob matches sid, whose publication version is 0 or equal to
// pubVersion, and that carries at least one time window overlapping
// [start, end), along with the specific window that matched. ok is false
// when no entry matches.
func Match(list List, sid string, start, end nstime.NsTime, pubVersion uint8) (entry Entry, window Window, ok bool) {
	for _, e := range list {
		if !matchGlob(e.SIDGlob, sid) {
			continue
		}
		if e.PublicationVersion != 0 && e.PublicationVersion != pubVersion {
			continue
		}
		for _, w := range e.Windows {
			if w.overlaps(start, end) {
				return e, w, true
			}
		}
	}

	return Entry{}, Window{}, false
}

// LoadFile parses the selection-file grammar of §6 from r: one selection
// per line, "SID_GLOB START_TIME END_TIME [PUBVERSION]", fields separated
// by whitespace. "*" marks an open bound. Blank lines and lines beginning
// with '#' are ignored. Distinct lines for the same SID_GLOB/PUBVERSION
// pair are NOT merged; they produce separate entries, each tested in file
// order by Match.
func LoadFile(r io.Reader) (List, error) {
	var list List

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 3 {
			return nil, errs.New(errs.GenError, "selection: malformed line: "+line)
		}

		start, err := parseBound(fields[1])
		if err != nil {
			return nil, err
		}
		end, err := parseBound(fields[2])
		if err != nil {
			return nil, err
		}

		var pv uint8
		if len(fields) >= 4 {
			v, err := strconv.Atoi(fields[3])
			if err != nil || v < 0 || v > 255 {
				return nil, errs.New(errs.GenError, "selection: malformed publication version: "+fields[3])
			}
			pv = uint8(v)
		}

		list = append(list, Entry{
			SIDGlob:            fields[0],
			PublicationVersion: pv,
			Windows:            []Window{{Start: start, End: end}},
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, errs.Wrap(errs.GenError, err)
	}

	return list, nil
}

func parseBound(field string) (nstime.NsTime, error) {
	if field == "*" {
		return nstime.Unset, nil
	}

	t := nstime.Parse(field)
	if t.IsError() {
		return nstime.Error, errs.New(errs.GenError, "selection: malformed time: "+field)
	}

	return t, nil
}
