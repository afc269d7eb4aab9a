// Command haltrain trains a megahal.Brain from a directory of plain-text
// corpus files and saves the result.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/yargevad/filepathx"

	"github.com/wbrown/megahal"
	"github.com/wbrown/megahal/persist"
	"github.com/wbrown/megahal/resources"
)

// PathInfo is one discovered corpus file: its path and size, the latter
// used only for -reorder's size-based sort.
type PathInfo struct {
	Path string
	Size int64
}

// globTexts recursively finds every .txt file under dirPath.
func globTexts(dirPath string) ([]PathInfo, error) {
	matches, err := filepathx.Glob(dirPath + "/**/*.txt")
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%s does not contain any .txt files", dirPath)
	}
	infos := make([]PathInfo, len(matches))
	for i, m := range matches {
		stat, err := os.Stat(m)
		if err != nil {
			return nil, err
		}
		infos[i] = PathInfo{Path: m, Size: stat.Size()}
	}
	return infos, nil
}

func sortBySize(infos []PathInfo, ascending bool) {
	sort.Slice(infos, func(i, j int) bool {
		if ascending {
			return infos[i].Size < infos[j].Size
		}
		return infos[i].Size > infos[j].Size
	})
}

func shuffle(infos []PathInfo, rng *rand.Rand) {
	for i := len(infos) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		infos[i], infos[j] = infos[j], infos[i]
	}
}

// aggregate totals LearnResults across every worker, guarded by mu since
// multiple workers report in concurrently.
type aggregate struct {
	mu sync.Mutex
	megahal.LearnResult
	filesLearned int
}

func (a *aggregate) add(r megahal.LearnResult) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.TokensLearned += r.TokensLearned
	a.LinesLearned += r.LinesLearned
	a.LinesProcessed += r.LinesProcessed
	a.filesLearned++
}

// consumeFiles is the worker-pool pattern used throughout the corpus
// (a fixed number of goroutines draining a work channel), applied here
// to overlap file I/O with the single-writer Learn call.
func consumeFiles(paths <-chan PathInfo, brain *megahal.Brain, agg *aggregate, wg *sync.WaitGroup) {
	defer wg.Done()
	for p := range paths {
		data, err := os.ReadFile(p.Path)
		if err != nil {
			log.Printf("skipping %s: %v", p.Path, err)
			continue
		}
		result, err := brain.Learn(string(data))
		if err != nil {
			log.Fatalf("learning %s: %v", p.Path, err)
		}
		agg.add(result)
		log.Printf("learned %s (%s)", p.Path, humanize.Bytes(uint64(len(data))))
	}
}

func main() {
	inputDir := flag.String("input", "", "input directory of .txt corpus files")
	brainPath := flag.String("brain", "megahal.brn", "path to load/save the trained brain")
	wordListURI := flag.String("wordlists", "",
		"directory or base URL to load banned/aux/swap/greeting word lists from")
	order := flag.Int("order", megahal.DefaultOrder,
		"model order (trie depth) for a freshly created brain")
	workers := flag.Int("workers", 4, "number of concurrent file-reading workers")
	reorder := flag.String("reorder", "",
		"reorder input files before learning [size_ascending, size_descending, shuffle, none]")
	stats := flag.Bool("stats", false,
		"after training, reply to a sample prompt and log candidate-score mean/stddev")
	statsPrompt := flag.String("stats-prompt", "hello there",
		"prompt to reply to when -stats is set")
	statsCandidates := flag.Int("stats-candidates", 10,
		"number of keyword-biased candidates to generate for -stats")
	flag.Parse()

	if *inputDir == "" {
		flag.Usage()
		log.Fatal("must provide -input for a corpus directory")
	}

	cfg := megahal.Config{Order: *order}
	if *wordListURI != "" {
		lists, err := resources.LoadWordLists(*wordListURI)
		if err != nil {
			log.Fatalf("loading word lists from %s: %v", *wordListURI, err)
		}
		cfg.Banned = lists.Banned
		cfg.Aux = lists.Aux
		cfg.Swap = lists.Swap
		cfg.Greeting = lists.Greeting
	}

	brain, err := persist.Load(*brainPath, cfg)
	if err != nil {
		brain = megahal.NewBrain(cfg)
	}

	paths, err := globTexts(*inputDir)
	if err != nil {
		log.Fatal(err)
	}

	if cfg.Aux == nil && len(paths) > 0 {
		if sample, err := os.ReadFile(paths[0].Path); err == nil {
			if aux, err := resources.DefaultAux(string(sample)); err == nil {
				brain.SetWordLists(nil, aux, nil, nil)
			}
		}
	}

	switch *reorder {
	case "size_ascending":
		sortBySize(paths, true)
	case "size_descending":
		sortBySize(paths, false)
	case "shuffle":
		shuffle(paths, rand.New(rand.NewSource(time.Now().UnixNano())))
	case "", "none":
	default:
		log.Fatalf("invalid -reorder: %s", *reorder)
	}

	log.Printf("training on %d files from %s", len(paths), *inputDir)
	begin := time.Now()

	work := make(chan PathInfo, len(paths))
	for _, p := range paths {
		work <- p
	}
	close(work)

	agg := &aggregate{}
	var wg sync.WaitGroup
	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go consumeFiles(work, brain, agg, &wg)
	}
	wg.Wait()

	duration := time.Since(begin).Seconds()
	log.Printf("learned %d lines (%d tokens) from %d files in %.2fs",
		agg.LinesLearned, agg.TokensLearned, agg.filesLearned, duration)

	if *stats {
		reply, mean, stddev := brain.ReplyStats(*statsPrompt, *statsCandidates)
		log.Printf("stats: reply=%q score mean=%.4f stddev=%.4f", reply, mean, stddev)
	}

	if err := persist.Save(brain, *brainPath); err != nil {
		log.Fatalf("saving %s: %v", *brainPath, err)
	}
}
