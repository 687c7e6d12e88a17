// Package aggregate merges the document store, the spreadsheet and the
// news scrapers into the unified in-memory datasets.
package aggregate

import (
	"context"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/lodnet/luach/internal/docparse"
	"github.com/lodnet/luach/internal/drive"
	"github.com/lodnet/luach/internal/hebtext"
	"github.com/lodnet/luach/internal/logger"
	"github.com/lodnet/luach/internal/models"
	"github.com/lodnet/luach/internal/utils"
)

const (
	bannerAdsFolder     = "מודעות"
	pageAdsFolder       = "עמוד מודעות"
	professionalsFolder = "בעלי מקצוע"
	whatsappTopic       = "קבוצות וואטסאפ"
)

// ListingSource produces one source's share of the unified collection.
// News sources are the per-scraper cached datasets, so their shorter TTLs
// survive inside the hourly articles refresh.
type ListingSource func(ctx context.Context) ([]models.Listing, error)

type Aggregator struct {
	drive *drive.Client
	news  []ListingSource
	now   func() time.Time
}

func New(driveClient *drive.Client, news ...ListingSource) *Aggregator {
	return &Aggregator{
		drive: driveClient,
		news:  news,
		now:   time.Now,
	}
}

// BuildListings runs every source concurrently, concatenates the results
// and annotates apartment-category items with a detected city. This is a
// pure merge; uniqueness relies on the per-source id scheme.
func (a *Aggregator) BuildListings(ctx context.Context) ([]models.Listing, error) {
	sources := append([]ListingSource{a.documentListings, a.whatsappGroups}, a.news...)

	parts := make([][]models.Listing, len(sources))
	var wg sync.WaitGroup
	for i, source := range sources {
		wg.Add(1)
		go func(i int, source ListingSource) {
			defer wg.Done()
			items, err := source(ctx)
			if err != nil {
				logger.Get().Error().Err(err).Msg("listing source failed")
				return
			}
			parts[i] = items
		}(i, source)
	}
	wg.Wait()

	var all []models.Listing
	for _, part := range parts {
		all = append(all, part...)
	}
	annotateCities(all)

	logger.Get().Info().Int("items", len(all)).Msg("listings aggregated")
	return all, nil
}

// annotateCities stamps apartment-category items with the city detected in
// the title, falling back to the content.
func annotateCities(items []models.Listing) {
	for i := range items {
		if hebtext.IsApartmentCategory(items[i].Topic) {
			city := hebtext.DetectCity(items[i].Title)
			if city == "" {
				city = hebtext.DetectCity(items[i].Content)
			}
			items[i].City = city
		}
	}
}

// documentListings parses every category document in the content folder;
// the document name is the topic. A failing document is skipped, a failing
// folder listing degrades to an empty source.
func (a *Aggregator) documentListings(ctx context.Context) ([]models.Listing, error) {
	docs, err := a.drive.Docs(ctx)
	if err != nil {
		logger.Get().Error().Err(err).Msg("listing category docs failed")
		return nil, nil
	}

	var all []models.Listing
	for _, doc := range docs {
		content, err := a.drive.ExportText(ctx, doc.ID)
		if err != nil {
			logger.Get().Error().Err(err).Str("doc", doc.Name).Msg("doc export failed")
			continue
		}
		all = append(all, docparse.ParseListings(content, doc.Name, doc.ID, a.now())...)
	}
	return all, nil
}

// whatsappGroups reads the group directory spreadsheet; rows without a
// WhatsApp link are dropped.
func (a *Aggregator) whatsappGroups(ctx context.Context) ([]models.Listing, error) {
	sheets, err := a.drive.Spreadsheets(ctx)
	if err != nil {
		logger.Get().Error().Err(err).Msg("listing spreadsheets failed")
		return nil, nil
	}

	var sheetID string
	for _, f := range sheets {
		if strings.Contains(f.Name, "וואטסאפ") || strings.Contains(strings.ToLower(f.Name), "whatsapp") || strings.Contains(f.Name, "קבוצות") {
			sheetID = f.ID
			break
		}
	}
	if sheetID == "" {
		logger.Get().Info().Msg("whatsapp groups sheet not found")
		return nil, nil
	}

	rows, err := a.drive.SheetValues(ctx, sheetID, "A:B")
	if err != nil {
		logger.Get().Error().Err(err).Msg("reading groups sheet failed")
		return nil, nil
	}

	now := a.now()
	var groups []models.Listing
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		name := strings.TrimSpace(row[0])
		link := strings.TrimSpace(row[1])
		if name == "" || link == "" {
			continue
		}
		if !strings.Contains(link, "whatsapp.com") && !strings.Contains(link, "wa.me") {
			continue
		}
		groups = append(groups, models.Listing{
			ID:         utils.StableID("whatsapp", name),
			Title:      name,
			Summary:    "לחץ להצטרפות לקבוצה",
			Content:    "קבוצת וואטסאפ: " + name + "\n\nלחץ להצטרפות לקבוצה",
			Link:       link,
			Topic:      whatsappTopic,
			Date:       now,
			ImageURL:   "https://placehold.co/800x400/25D366/ffffff?text=%F0%9F%93%B1",
			IsExternal: true,
		})
	}

	logger.Get().Info().Int("groups", len(groups)).Msg("whatsapp groups fetched")
	return groups, nil
}

var thumbnailSize = regexp.MustCompile(`=s\d+`)

// BuildBannerAds regenerates the banner ad set from the ads image folder.
func (a *Aggregator) BuildBannerAds(ctx context.Context) ([]models.Ad, error) {
	return a.adsFromFolder(ctx, bannerAdsFolder)
}

// BuildPageAds regenerates the classifieds-page gallery.
func (a *Aggregator) BuildPageAds(ctx context.Context) ([]models.Ad, error) {
	return a.adsFromFolder(ctx, pageAdsFolder)
}

func (a *Aggregator) adsFromFolder(ctx context.Context, folderName string) ([]models.Ad, error) {
	folders, err := a.drive.FolderContaining(ctx, folderName)
	if err != nil {
		logger.Get().Error().Err(err).Str("folder", folderName).Msg("locating ads folder failed")
		return nil, nil
	}
	if len(folders) == 0 {
		logger.Get().Info().Str("folder", folderName).Msg("ads folder not found")
		return nil, nil
	}

	images, err := a.drive.Images(ctx, folders[0].ID)
	if err != nil {
		logger.Get().Error().Err(err).Str("folder", folderName).Msg("listing ad images failed")
		return nil, nil
	}

	var ads []models.Ad
	for _, file := range images {
		target := hebtext.DecodeAdFilename(file.Name)

		// GIFs need the direct link to preserve animation.
		isGif := file.MimeType == "image/gif" || strings.HasSuffix(strings.ToLower(file.Name), ".gif")
		var imageURL string
		switch {
		case isGif:
			imageURL = "https://drive.google.com/uc?export=view&id=" + file.ID
		case file.ThumbnailLink != "":
			imageURL = thumbnailSize.ReplaceAllString(file.ThumbnailLink, "=s1000")
		default:
			imageURL = "https://drive.google.com/thumbnail?id=" + file.ID + "&sz=w1000"
		}

		ads = append(ads, models.Ad{
			ID:          file.ID,
			ImageURL:    imageURL,
			TargetURL:   target.URL,
			Description: target.Description,
			Position:    hebtext.PositionFromFilename(file.Name),
		})
	}

	logger.Get().Info().Int("ads", len(ads)).Str("folder", folderName).Msg("ads fetched")
	return ads, nil
}

var leadingNumber = regexp.MustCompile(`^(\d+)\.`)

// BuildProfessionals pairs the numbered professionals document with the
// sibling image folder, matching images by leading-number filename.
func (a *Aggregator) BuildProfessionals(ctx context.Context) ([]models.Professional, error) {
	folder, err := a.drive.FolderNamed(ctx, professionalsFolder)
	if err != nil {
		logger.Get().Error().Err(err).Msg("locating professionals folder failed")
		return nil, nil
	}
	if folder == nil {
		logger.Get().Info().Msg("professionals folder not found")
		return nil, nil
	}

	docs, err := a.drive.DocsIn(ctx, folder.ID)
	if err != nil {
		logger.Get().Error().Err(err).Msg("listing professionals docs failed")
		return nil, nil
	}
	var docID string
	for _, d := range docs {
		if strings.Contains(d.Name, "בעלי מקצוע") || strings.Contains(d.Name, "מקצוע") {
			docID = d.ID
			break
		}
	}
	if docID == "" {
		logger.Get().Info().Msg("professionals document not found")
		return nil, nil
	}

	content, err := a.drive.ExportText(ctx, docID)
	if err != nil {
		logger.Get().Error().Err(err).Msg("exporting professionals doc failed")
		return nil, nil
	}

	imageMap := map[string]string{}
	if images, err := a.drive.Images(ctx, folder.ID); err != nil {
		logger.Get().Warn().Err(err).Msg("listing professional images failed")
	} else {
		for _, file := range images {
			if m := leadingNumber.FindStringSubmatch(file.Name); m != nil {
				imageMap[m[1]] = "https://drive.google.com/thumbnail?id=" + file.ID + "&sz=w400"
			}
		}
	}

	professionals := docparse.ParseProfessionals(content)
	for i := range professionals {
		professionals[i].ImageURL = imageMap[professionals[i].Number]
	}

	logger.Get().Info().Int("professionals", len(professionals)).Msg("professionals fetched")
	return professionals, nil
}
