package ingest

import (
	"github.com/finchley/lexi/internal/domain"
)

// DemoSetName is the library name of the built-in starter set.
const DemoSetName = "Starter Words"

var demoRecords = []domain.WordRecord{
	{
		Term:       "serendipity",
		Definition: "the occurrence of happy or beneficial events by chance",
		Phonetic:   "ˌserənˈdipədē",
		Example:    "Meeting her at the bookshop was pure serendipity.",
	},
	{
		Term:       "ephemeral",
		Definition: "lasting for a very short time",
		Phonetic:   "əˈfem(ə)rəl",
		Example:    "The fame of internet trends is ephemeral.",
	},
	{
		Term:       "laconic",
		Definition: "using very few words",
		Phonetic:   "ləˈkänik",
		Example:    "His laconic reply ended the discussion.",
	},
	{
		Term:       "ubiquitous",
		Definition: "present, appearing, or found everywhere",
		Phonetic:   "yo͞oˈbikwədəs",
		Example:    "Smartphones have become ubiquitous.",
	},
	{
		Term:       "resilient",
		Definition: "able to recover quickly from difficulties",
		Phonetic:   "rəˈzilyənt",
		Example:    "Children are often more resilient than adults expect.",
	},
	{
		Term:       "meticulous",
		Definition: "showing great attention to detail",
		Phonetic:   "məˈtikyələs",
		Example:    "She kept meticulous notes during every lecture.",
	},
	{
		Term:       "candid",
		Definition: "truthful and straightforward",
		Phonetic:   "ˈkandəd",
		Example:    "He gave a candid assessment of the project's problems.",
	},
	{
		Term:       "tenacious",
		Definition: "holding firmly to a purpose or course of action",
		Phonetic:   "təˈnāSHəs",
		Example:    "Her tenacious pursuit of the answer paid off.",
	},
}

// DemoSet builds a fresh copy of the built-in starter study set. Each call
// mints new word IDs so the demo set behaves like any other ingested set.
func DemoSet() *domain.StudySet {
	words := domain.NormalizeRecords(demoRecords)
	set, err := domain.NewStudySet(DemoSetName, domain.SetTypeDemo, words)
	if err != nil {
		// The demo data is static and valid; a failure here is a bug.
		panic(err)
	}
	return set
}
