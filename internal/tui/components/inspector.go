package components

import (
	"fmt"
	"strings"

	"github.com/adlens/adlens/internal/api"
	"github.com/adlens/adlens/internal/domain"
	"github.com/adlens/adlens/internal/tui/styles"
)

// Inspector is the right-hand detail pane for the selected creative.
// It shows the list-row data immediately and fills in similar ads when
// the detail fetch lands.
type Inspector struct {
	ad      *domain.Ad
	similar []domain.Ad
	width   int
	height  int
}

// NewInspector creates an empty inspector.
func NewInspector() *Inspector {
	return &Inspector{}
}

// SetAd shows an ad from list data, clearing stale similar ads.
func (in *Inspector) SetAd(ad *domain.Ad) {
	in.ad = ad
	in.similar = nil
}

// SetDetail fills in the full detail payload. Ignored when the user has
// already moved on to a different ad.
func (in *Inspector) SetDetail(detail api.AdDetail) {
	if in.ad == nil || in.ad.ID != detail.Ad.ID {
		return
	}
	ad := detail.Ad
	in.ad = &ad
	in.similar = detail.SimilarAds
}

// SetSize sets the render dimensions.
func (in *Inspector) SetSize(width, height int) {
	in.width = width
	in.height = height
}

// View renders the pane.
func (in *Inspector) View() string {
	inner := in.width - 4
	if inner < 10 {
		inner = 10
	}

	var b strings.Builder
	if in.ad == nil {
		b.WriteString(styles.DimStyle.Render("Nothing selected"))
	} else {
		ad := in.ad
		b.WriteString(styles.TitleStyle.Render(styles.Truncate(ad.AdvertiserName, inner)))
		b.WriteString("\n")
		if ad.AdvertiserHandle != "" {
			b.WriteString(styles.DimStyle.Render("@" + ad.AdvertiserHandle))
			b.WriteString("\n")
		}
		b.WriteString(styles.PlatformBadge(string(ad.Platform)))
		b.WriteString(" " + styles.SubtitleStyle.Render(string(ad.Format)))
		b.WriteString("\n\n")

		if ad.AdCopy != "" {
			b.WriteString(wrap(ad.AdCopy, inner))
			b.WriteString("\n\n")
		}
		if ad.CTAText != "" {
			b.WriteString(styles.BadgeStyle.Render(ad.CTAText))
			b.WriteString("\n\n")
		}

		b.WriteString(styles.DimStyle.Render(fmt.Sprintf("♥ %d   💬 %d   ↗ %d", ad.Likes, ad.Comments, ad.Shares)))
		b.WriteString("\n")
		if dates := ad.RunDates(); dates != "" {
			b.WriteString(styles.DimStyle.Render(dates))
			b.WriteString("\n")
		}
		if len(ad.Tags) > 0 {
			b.WriteString(styles.AccentStyle.Render(styles.Truncate("#"+strings.Join(ad.Tags, " #"), inner)))
			b.WriteString("\n")
		}

		if len(in.similar) > 0 {
			b.WriteString("\n")
			b.WriteString(styles.SubtitleStyle.Render("Similar ads"))
			b.WriteString("\n")
			for _, s := range in.similar {
				b.WriteString(styles.DimStyle.Render("· " + styles.Truncate(s.DisplayTitle(), inner-2)))
				b.WriteString("\n")
			}
		}
	}

	return styles.InactiveBorder.Width(in.width - 2).Height(in.height - 2).Render(b.String())
}

// wrap does naive word wrapping at the given width.
func wrap(s string, width int) string {
	words := strings.Fields(s)
	var lines []string
	var line string
	for _, w := range words {
		if line == "" {
			line = w
		} else if len(line)+1+len(w) <= width {
			line += " " + w
		} else {
			lines = append(lines, line)
			line = w
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	if len(lines) > 8 {
		lines = lines[:8]
		lines[7] += "..."
	}
	return styles.SubtitleStyle.Render(strings.Join(lines, "\n"))
}
