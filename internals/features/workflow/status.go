package workflow

import (
	"errors"
	"fmt"
	"strings"
)

// Variant selects which dashboard flavour the binary serves.
type Variant string

const (
	VariantBernie   Variant = "bernie"
	VariantBigwater Variant = "bigwater"
)

// Bucket is the stats column a status is counted under.
type Bucket string

const (
	BucketToDo           Bucket = "toDo"
	BucketInProgress     Bucket = "inProgress"
	BucketReadyToPublish Bucket = "readyToPublish"
	BucketFinished       Bucket = "finished"
)

// Shared labels. StatusFinished is the only terminal status in every variant.
const (
	StatusToEdit   = "À monter"
	StatusFinished = "Terminé"
)

var (
	ErrUnknownStatus  = errors.New("statut de production inconnu")
	ErrUnknownVariant = errors.New("unknown app variant")
)

type Status struct {
	Value       string `json:"value"`
	Description string `json:"description"`
	Bucket      Bucket `json:"bucket"`
}

var variantStatuses = map[Variant][]Status{
	VariantBernie: {
		{Value: StatusToEdit, Description: "Rushes reçus, montage pas commencé", Bucket: BucketToDo},
		{Value: "En cours", Description: "Montage en cours", Bucket: BucketInProgress},
		{Value: "Prêt à publier", Description: "Validé, en attente de publication", Bucket: BucketReadyToPublish},
		{Value: StatusFinished, Description: "Publié", Bucket: BucketFinished},
	},
	VariantBigwater: {
		{Value: StatusToEdit, Description: "Rushes reçus, montage pas commencé", Bucket: BucketToDo},
		{Value: "Miniature à faire", Description: "Montage fini, miniature manquante", Bucket: BucketInProgress},
		{Value: "En validation", Description: "En relecture client", Bucket: BucketInProgress},
		{Value: "Prête à exporter", Description: "Validée, export final à lancer", Bucket: BucketReadyToPublish},
		{Value: StatusFinished, Description: "Exportée et livrée", Bucket: BucketFinished},
	},
}

// Catalog is the closed set of production statuses for one variant.
// Any status may follow any other; only membership is checked.
type Catalog struct {
	variant  Variant
	statuses []Status
	index    map[string]Status
}

func ParseVariant(raw string) (Variant, error) {
	switch v := Variant(strings.ToLower(strings.TrimSpace(raw))); v {
	case "":
		return VariantBernie, nil
	case VariantBernie, VariantBigwater:
		return v, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownVariant, raw)
	}
}

func NewCatalog(variant Variant) (*Catalog, error) {
	statuses, ok := variantStatuses[variant]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, variant)
	}
	c := &Catalog{
		variant:  variant,
		statuses: statuses,
		index:    make(map[string]Status, len(statuses)),
	}
	for _, s := range statuses {
		c.index[s.Value] = s
	}
	return c, nil
}

// MustCatalog is NewCatalog for known variants; it panics otherwise.
func MustCatalog(variant Variant) *Catalog {
	c, err := NewCatalog(variant)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) Variant() Variant { return c.variant }

func (c *Catalog) Statuses() []Status {
	out := make([]Status, len(c.statuses))
	copy(out, c.statuses)
	return out
}

// Default is the status a new video starts in.
func (c *Catalog) Default() string { return c.statuses[0].Value }

func (c *Catalog) Terminal() string { return StatusFinished }

func (c *Catalog) IsTerminal(status string) bool {
	s, ok := c.index[status]
	return ok && s.Bucket == BucketFinished
}

func (c *Catalog) Contains(status string) bool {
	_, ok := c.index[status]
	return ok
}

func (c *Catalog) Validate(status string) error {
	if !c.Contains(status) {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, status)
	}
	return nil
}

func (c *Catalog) BucketOf(status string) (Bucket, bool) {
	s, ok := c.index[status]
	return s.Bucket, ok
}

// StatusCounts is the body of GET /api/stats.
type StatusCounts struct {
	ToDo           int `json:"toDo"`
	InProgress     int `json:"inProgress"`
	ReadyToPublish int `json:"readyToPublish"`
	Finished       int `json:"finished"`
}

// Count tallies statuses per bucket. Values outside the catalog are ignored.
func (c *Catalog) Count(statuses []string) StatusCounts {
	var out StatusCounts
	for _, st := range statuses {
		b, ok := c.BucketOf(st)
		if !ok {
			continue
		}
		switch b {
		case BucketToDo:
			out.ToDo++
		case BucketInProgress:
			out.InProgress++
		case BucketReadyToPublish:
			out.ReadyToPublish++
		case BucketFinished:
			out.Finished++
		}
	}
	return out
}
