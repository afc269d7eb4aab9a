// Package resources fetches and parses the word lists (banned, aux, swap,
// greeting) a megahal.Brain is configured with: local files, or a
// base URI over HTTP, with download-progress reporting for the latter.
package resources

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path"
	"strconv"
	"strings"
	"time"

	mapset "github.com/deckarep/golang-set"
	"github.com/dustin/go-humanize"
)

type ResourceFlag uint8

const (
	RESOURCE_REQUIRED ResourceFlag = 1 << iota
	RESOURCE_OPTIONAL
)

// WordListEntries describes the word-list files a Brain's Config can be
// populated from. None are required: an absent optional list simply
// leaves that part of Config at its zero value.
func WordListEntries() map[string]ResourceFlag {
	return map[string]ResourceFlag{
		"banned.txt":   RESOURCE_OPTIONAL,
		"aux.txt":      RESOURCE_OPTIONAL,
		"swap.txt":     RESOURCE_OPTIONAL,
		"greeting.txt": RESOURCE_OPTIONAL,
	}
}

// WriteCounter counts bytes written to it and, every 10 seconds, logs a
// human-readable progress report. Used as the side writer of an
// io.TeeReader, so it sees every byte read on the way to the real
// destination.
type WriteCounter struct {
	Total    uint64
	Size     uint64
	Path     string
	Last     time.Time
	Reported bool
}

func (wc *WriteCounter) Write(p []byte) (int, error) {
	n := len(p)
	wc.Total += uint64(n)
	if time.Since(wc.Last).Seconds() > 10 {
		wc.Reported = true
		wc.Last = time.Now()
		log.Print(fmt.Sprintf("Fetching %s... %s / %s completed.",
			wc.Path, humanize.Bytes(wc.Total), humanize.Bytes(wc.Size)))
	}
	return n, nil
}

func isValidUrl(toTest string) bool {
	u, err := url.ParseRequestURI(toTest)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}
	return true
}

// FetchHTTP fetches rsrc relative to the base URI uri over HTTP.
func FetchHTTP(uri, rsrc string) (io.ReadCloser, error) {
	resp, err := http.Get(uri + "/" + rsrc)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != 200 {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP status code %d fetching %s/%s",
			resp.StatusCode, uri, rsrc)
	}
	return resp.Body, nil
}

// SizeHTTP reports the Content-Length of rsrc relative to uri, via HEAD.
func SizeHTTP(uri, rsrc string) (uint, error) {
	resp, err := http.Head(uri + "/" + rsrc)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return 0, fmt.Errorf("HTTP status code %d fetching %s/%s",
			resp.StatusCode, uri, rsrc)
	}
	size, _ := strconv.Atoi(resp.Header.Get("Content-Length"))
	return uint(size), nil
}

// Fetch resolves rsrc relative to uri: a local directory if uri isn't a
// URL, otherwise HTTP.
func Fetch(uri, rsrc string) (io.ReadCloser, error) {
	if isValidUrl(uri) {
		return FetchHTTP(uri, rsrc)
	}
	full := path.Join(uri, rsrc)
	if _, err := os.Stat(full); os.IsNotExist(err) {
		return nil, errors.New("resource not found: " + full)
	}
	handle, err := os.Open(full)
	if err != nil {
		return nil, fmt.Errorf("error opening %s: %w", full, err)
	}
	return handle, nil
}

// Size resolves the size of rsrc relative to uri.
func Size(uri, rsrc string) (uint, error) {
	if isValidUrl(uri) {
		return SizeHTTP(uri, rsrc)
	}
	info, err := os.Stat(path.Join(uri, rsrc))
	if err != nil {
		return 0, err
	}
	return uint(info.Size()), nil
}

// fetchLines opens rsrc relative to uri and returns its non-blank,
// non-comment lines with surrounding whitespace trimmed. A progress
// report is logged for transfers that take more than 10 seconds.
func fetchLines(uri, rsrc string) ([]string, error) {
	body, err := Fetch(uri, rsrc)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	size, _ := Size(uri, rsrc)
	counter := &WriteCounter{Path: rsrc, Size: uint64(size), Last: time.Now()}

	var lines []string
	scanner := bufio.NewScanner(io.TeeReader(body, counter))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}

// LoadWordSet loads rsrc as a newline-delimited, uppercased word set —
// the shape used for banned.txt and aux.txt.
func LoadWordSet(uri, rsrc string) (mapset.Set, error) {
	lines, err := fetchLines(uri, rsrc)
	if err != nil {
		return nil, err
	}
	set := mapset.NewThreadUnsafeSet()
	for _, line := range lines {
		set.Add(strings.ToUpper(line))
	}
	return set, nil
}

// LoadSwapList loads swap.txt, one rewrite per line in the form
// "FROM TO1,TO2,...", into a from-word -> to-words set map.
func LoadSwapList(uri, rsrc string) (map[string]mapset.Set, error) {
	lines, err := fetchLines(uri, rsrc)
	if err != nil {
		return nil, err
	}
	swap := make(map[string]mapset.Set, len(lines))
	for _, line := range lines {
		fields := strings.SplitN(line, " ", 2)
		if len(fields) != 2 {
			continue
		}
		from := strings.ToUpper(strings.TrimSpace(fields[0]))
		toSet := mapset.NewThreadUnsafeSet()
		for _, to := range strings.Split(fields[1], ",") {
			to = strings.ToUpper(strings.TrimSpace(to))
			if to != "" {
				toSet.Add(to)
			}
		}
		if toSet.Cardinality() > 0 {
			swap[from] = toSet
		}
	}
	return swap, nil
}

// LoadGreeting loads greeting.txt as a plain ordered list of opening
// words, preserving case (Greet's reply tokenization uppercases them).
func LoadGreeting(uri, rsrc string) ([]string, error) {
	return fetchLines(uri, rsrc)
}

// WordLists is the parsed form of every optional word-list resource,
// ready to populate a megahal.Config.
type WordLists struct {
	Banned   mapset.Set
	Aux      mapset.Set
	Swap     map[string]mapset.Set
	Greeting []string
}

// LoadWordLists resolves every entry in WordListEntries relative to uri.
// A missing optional resource is not an error; other fetch failures are
// returned immediately.
func LoadWordLists(uri string) (WordLists, error) {
	var out WordLists
	var err error

	if out.Banned, err = loadOptionalSet(uri, "banned.txt"); err != nil {
		return out, err
	}
	if out.Aux, err = loadOptionalSet(uri, "aux.txt"); err != nil {
		return out, err
	}
	if swap, serr := LoadSwapList(uri, "swap.txt"); serr == nil {
		out.Swap = swap
	} else if !isNotFound(serr) {
		return out, serr
	}
	if greeting, gerr := LoadGreeting(uri, "greeting.txt"); gerr == nil {
		out.Greeting = greeting
	} else if !isNotFound(gerr) {
		return out, gerr
	}
	return out, nil
}

func loadOptionalSet(uri, rsrc string) (mapset.Set, error) {
	set, err := LoadWordSet(uri, rsrc)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return set, nil
}

func isNotFound(err error) bool {
	return err != nil && (strings.Contains(err.Error(), "resource not found") ||
		strings.Contains(err.Error(), "HTTP status code 404"))
}
