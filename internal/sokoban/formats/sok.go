package formats

import (
	"bufio"
	"bytes"
	"fmt"
	"regexp"
	"strings"
)

// sokRow matches a level row of the SOK text format.
var sokRow = regexp.MustCompile(`^[@+#.$* ]+$`)

const (
	sokComment     = "::"
	sokTitle       = "Title:"
	sokDescription = "Description:"
	sokLevelName   = ";"
	sokLevelNote   = "Comment:"
)

// ParseSOK parses the line-based SOK format:
//
//	:: comment
//	Title: Pack name
//	Description: Pack description
//
//	#####
//	#@$.#
//	#####
//	; Level name
//	Comment: Level description
//
// Consecutive row lines form a level; any other line ends it. Whitespace
// only lines separate levels. "Title:" and "Description:" describe the pack
// when they appear before the first level; "; name" and "Comment:" lines
// following a level describe that level.
func ParseSOK(data []byte) (Pack, error) {
	var (
		p       Pack
		rows    []string
		lastIdx = -1
	)

	flush := func() {
		if len(rows) == 0 {
			return
		}
		p.Levels = append(p.Levels, Level{Items: rows})
		lastIdx = len(p.Levels) - 1
		rows = nil
	}

	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")

		if strings.HasPrefix(line, sokComment) {
			continue
		}

		if sokRow.MatchString(line) && strings.TrimSpace(line) != "" {
			rows = append(rows, line)
			continue
		}

		flush()

		text := strings.TrimSpace(line)
		switch {
		case text == "":
		case lastIdx < 0 && strings.HasPrefix(text, sokTitle):
			p.Name = strings.TrimSpace(strings.TrimPrefix(text, sokTitle))
		case lastIdx < 0 && strings.HasPrefix(text, sokDescription):
			p.Description = strings.TrimSpace(strings.TrimPrefix(text, sokDescription))
		case lastIdx >= 0 && strings.HasPrefix(text, sokLevelName):
			if p.Levels[lastIdx].Name == "" {
				p.Levels[lastIdx].Name = strings.TrimSpace(strings.TrimPrefix(text, sokLevelName))
			}
		case lastIdx >= 0 && strings.HasPrefix(text, sokLevelNote):
			p.Levels[lastIdx].Description = strings.TrimSpace(strings.TrimPrefix(text, sokLevelNote))
		}
	}
	if err := sc.Err(); err != nil {
		return Pack{}, fmt.Errorf("sok scan: %w", err)
	}
	flush()

	if err := checkLevels(p); err != nil {
		return Pack{}, err
	}
	return p, nil
}

// EncodeSOK writes p in the SOK format accepted by ParseSOK.
func EncodeSOK(p Pack) ([]byte, error) {
	if err := checkLevels(p); err != nil {
		return nil, err
	}

	var b strings.Builder
	if p.Name != "" {
		fmt.Fprintf(&b, "%s %s\n", sokTitle, p.Name)
	}
	if p.Description != "" {
		fmt.Fprintf(&b, "%s %s\n", sokDescription, p.Description)
	}

	for i, lvl := range p.Levels {
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		for _, row := range lvl.Items {
			row = strings.TrimRight(row, " ")
			if row == "" || !sokRow.MatchString(row) {
				return nil, fmt.Errorf("level %d: row %q cannot be written as SOK", i+1, row)
			}
			b.WriteString(row)
			b.WriteByte('\n')
		}
		if lvl.Name != "" {
			fmt.Fprintf(&b, "%s %s\n", sokLevelName, lvl.Name)
		}
		if lvl.Description != "" {
			fmt.Fprintf(&b, "%s %s\n", sokLevelNote, lvl.Description)
		}
	}
	return []byte(b.String()), nil
}
