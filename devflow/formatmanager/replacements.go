package formatmanager

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Replacement is one edit clang-format would apply to a file.
type Replacement struct {
	Offset int    `xml:"offset,attr"`
	Length int    `xml:"length,attr"`
	Text   string `xml:",chardata"`
}

type replacements struct {
	XMLName xml.Name      `xml:"replacements"`
	Items   []Replacement `xml:"replacement"`
}

const replacementPrefix = "<replacement "

var replacementAttrs = regexp.MustCompile(`offset='(\d+)' length='(\d+)'`)

// ParseReplacements decodes the output of "clang-format -output-replacements-xml".
// Empty output means no replacements.
//
// clang-format copies source bytes into the replacement text unescaped, so the
// output is not always well-formed XML. Invalid UTF-8 is replaced before
// decoding; if decoding still fails, replacements are counted line by line.
func ParseReplacements(data []byte) ([]Replacement, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var r replacements
	err := xml.Unmarshal([]byte(strings.ToValidUTF8(string(data), "\uFFFD")), &r)
	if err == nil {
		return r.Items, nil
	}

	if items := scanReplacements(data); len(items) > 0 {
		return items, nil
	}
	return nil, fmt.Errorf("decoding replacements: %w", err)
}

// scanReplacements finds replacement elements by their line prefix. Only the
// offset and length are recovered.
func scanReplacements(data []byte) []Replacement {
	var items []Replacement
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), len(data)+1)
	for scanner.Scan() {
		line := scanner.Bytes()
		if !bytes.HasPrefix(line, []byte(replacementPrefix)) {
			continue
		}
		rep := Replacement{}
		if m := replacementAttrs.FindSubmatch(line); m != nil {
			rep.Offset, _ = strconv.Atoi(string(m[1]))
			rep.Length, _ = strconv.Atoi(string(m[2]))
		}
		items = append(items, rep)
	}
	return items
}
