package murdermap

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/chromedp"

	"homicide-report/config"
	"homicide-report/models"
	"homicide-report/utils"
)

const source = "murdermap"

// Scraper collects homicide case records from the murder map index.
type Scraper struct {
	cfg      *config.Config
	logger   *utils.Logger
	pool     *utils.WorkerPool
	seenCase *utils.StringSet
	retry    *utils.RetryConfig

	mu        sync.Mutex
	incidents []*models.RawIncident
}

// New creates a ready-to-use Scraper.
func New(cfg *config.Config, logger *utils.Logger) *Scraper {
	return &Scraper{
		cfg:      cfg,
		logger:   logger,
		pool:     utils.NewWorkerPool(cfg.MaxConcurrency, cfg.RateLimitMs),
		seenCase: utils.NewStringSet(),
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
		incidents: make([]*models.RawIncident, 0),
	}
}

// Scrape drives pagination over the case index and detail-page enrichment.
func (s *Scraper) Scrape() ([]*models.RawIncident, error) {
	s.logger.Info("[murdermap] Starting scrape — target: %d pages, %d cases/page",
		s.cfg.PagesToScrape, s.cfg.CasesPerPage)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 "+
			"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
	)
	if s.cfg.ChromeBin != "" {
		opts = append(opts, chromedp.ExecPath(s.cfg.ChromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	defer cancelAlloc()

	// Suppress chromedp log noise
	silentCtx, cancelSilent := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelSilent()
	allocCtx = silentCtx

	currentURL := s.cfg.SourceURL
	for page := 1; page <= s.cfg.PagesToScrape; page++ {
		s.logger.Info("[murdermap] Scraping page %d — URL: %s", page, currentURL)

		pageIncidents, nextURL, err := s.scrapePage(allocCtx, currentURL, page)
		if err != nil {
			s.logger.Error("[murdermap] Page %d failed: %v", page, err)
			break
		}

		if len(pageIncidents) == 0 {
			s.logger.Warn("[murdermap] Page %d returned 0 cases — stopping", page)
			break
		}

		s.enrichIncidents(allocCtx, pageIncidents)

		s.mu.Lock()
		s.incidents = append(s.incidents, pageIncidents...)
		s.mu.Unlock()

		s.logger.Info("[murdermap] Page %d done — collected %d cases so far", page, len(s.incidents))

		if nextURL == "" || page >= s.cfg.PagesToScrape {
			break
		}

		currentURL = nextURL
		time.Sleep(time.Duration(s.cfg.RateLimitMs) * time.Millisecond)
	}

	s.logger.Info("[murdermap] Scrape complete — total raw cases: %d", len(s.incidents))
	return s.incidents, nil
}

// scrapePage loads one index page and extracts the case cards on it.
func (s *Scraper) scrapePage(allocCtx context.Context, pageURL string, pageNum int) ([]*models.RawIncident, string, error) {
	var incidents []*models.RawIncident
	var nextURL string

	err := s.retry.Do(fmt.Sprintf("scrape-page-%d", pageNum), func() error {
		ctx, cancel := chromedp.NewContext(allocCtx)
		defer cancel()

		ctx, cancelTimeout := context.WithTimeout(ctx, 90*time.Second)
		defer cancelTimeout()

		type caseData struct {
			Name    string `json:"name"`
			Age     string `json:"age"`
			Date    string `json:"date"`
			Address string `json:"address"`
			Method  string `json:"method"`
			URL     string `json:"url"`
		}

		var cards []caseData
		var nextPageURL string

		err := chromedp.Run(ctx,
			chromedp.Navigate(pageURL),
			chromedp.Sleep(5*time.Second),

			// Scroll to trigger lazy-loaded entries
			chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil),
			chromedp.Sleep(2*time.Second),

			// Extract case cards from the index listing
			chromedp.Evaluate(`
				(function() {
					var results = [];
					var limit = `+fmt.Sprintf("%d", s.cfg.CasesPerPage)+`;

					var cards = document.querySelectorAll('article.case, li.case-entry, div.case-card');
					if (cards.length === 0) {
						cards = document.querySelectorAll('article, .entry');
					}

					var seen = {};
					for (var i = 0; i < cards.length && results.length < limit; i++) {
						var card = cards[i];

						var linkEl = card.querySelector('a[href*="/case/"], h2 a, h3 a, a');
						var url = linkEl ? linkEl.href : '';
						if (!url || seen[url]) continue;
						seen[url] = true;

						var nameEl = card.querySelector('.victim-name, h2, h3');
						var name = nameEl ? nameEl.innerText.trim() : '';

						// Age usually appears as "Name, 34" or in a dedicated cell
						var age = '';
						var ageEl = card.querySelector('.victim-age, [data-field="age"]');
						if (ageEl) {
							age = ageEl.innerText.trim();
						} else {
							var ageMatch = (card.innerText || '').match(/aged?\s+(\d{1,3})/i) ||
							               name.match(/,\s*(\d{1,3})\s*$/);
							if (ageMatch) age = ageMatch[1];
						}

						var dateEl = card.querySelector('time, .case-date, .date');
						var date = dateEl ? (dateEl.getAttribute('datetime') || dateEl.innerText).trim() : '';

						var addrEl = card.querySelector('.case-location, .location, address');
						var address = addrEl ? addrEl.innerText.trim() : '';

						var methodEl = card.querySelector('.case-method, .method, .category a');
						var method = methodEl ? methodEl.innerText.trim() : '';

						results.push({
							name:    name,
							age:     age,
							date:    date,
							address: address,
							method:  method,
							url:     url
						});
					}
					return results;
				})()
			`, &cards),

			// Find the next index page
			chromedp.Evaluate(`
				(function() {
					var next = document.querySelector('a.next, a[rel="next"], .pagination a.next-page');
					if (next && next.href) return next.href;

					var links = document.querySelectorAll('nav a, .pagination a');
					for (var i = 0; i < links.length; i++) {
						var text = links[i].innerText.toLowerCase().trim();
						if (text === 'next' || text === '>' || text === 'older') {
							return links[i].href;
						}
					}
					return '';
				})()
			`, &nextPageURL),
		)

		if err != nil {
			return fmt.Errorf("chromedp page scrape: %w", err)
		}

		s.logger.Debug("[murdermap] Page %d — found %d cards", pageNum, len(cards))

		incidents = incidents[:0]
		for _, c := range cards {
			if c.URL == "" || !s.seenCase.Add(c.URL) {
				continue
			}
			incidents = append(incidents, &models.RawIncident{
				Name:      c.Name,
				RawAge:    c.Age,
				Date:      c.Date,
				Address:   c.Address,
				Method:    c.Method,
				URL:       c.URL,
				Source:    source,
				ScrapedAt: time.Now(),
			})
		}

		nextURL = nextPageURL
		return nil
	})

	return incidents, nextURL, err
}

// enrichIncidents visits each case's detail page through the worker pool
// to pick up the fields the index listing does not carry (CCTV coverage,
// case status, and a method when the card had none).
func (s *Scraper) enrichIncidents(allocCtx context.Context, incidents []*models.RawIncident) {
	for _, inc := range incidents {
		inc := inc
		s.pool.Submit(func() {
			if err := s.scrapeDetail(allocCtx, inc); err != nil {
				s.logger.Warn("[murdermap] Detail scrape failed for %s: %v", inc.URL, err)
			}
		})
	}
	s.pool.Wait()
}

func (s *Scraper) scrapeDetail(allocCtx context.Context, inc *models.RawIncident) error {
	return s.retry.Do("scrape-detail", func() error {
		ctx, cancel := chromedp.NewContext(allocCtx)
		defer cancel()

		ctx, cancelTimeout := context.WithTimeout(ctx, 60*time.Second)
		defer cancelTimeout()

		type detailData struct {
			Method string `json:"method"`
			CCTV   string `json:"cctv"`
			Closed string `json:"closed"`
		}
		var detail detailData

		err := chromedp.Run(ctx,
			chromedp.Navigate(inc.URL),
			chromedp.Sleep(3*time.Second),

			chromedp.Evaluate(`
				(function() {
					function fieldValue(labels) {
						var rows = document.querySelectorAll('table tr, dl > div, .case-meta li');
						for (var i = 0; i < rows.length; i++) {
							var text = (rows[i].innerText || '').toLowerCase();
							for (var j = 0; j < labels.length; j++) {
								if (text.indexOf(labels[j]) === 0) {
									var parts = rows[i].innerText.split(/[:–]/);
									if (parts.length > 1) return parts.slice(1).join(':').trim();
								}
							}
						}
						return '';
					}
					return {
						method: fieldValue(['method', 'cause of death']),
						cctv:   fieldValue(['cctv']),
						closed: fieldValue(['status', 'case status', 'solved'])
					};
				})()
			`, &detail),
		)
		if err != nil {
			return fmt.Errorf("chromedp detail scrape: %w", err)
		}

		if inc.Method == "" {
			inc.Method = detail.Method
		}
		inc.CCTV = detail.CCTV
		inc.Closed = detail.Closed
		return nil
	})
}
