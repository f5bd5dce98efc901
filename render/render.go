package render

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	DefaultProjectLimit = 12
	DefaultReviewLimit  = 12

	teamEmptyMessage   = "No team members yet. Check back soon!"
	teamPendingMessage = "Team section coming soon..."
)

type ProjectSource interface {
	FindRecent(ctx context.Context, limit int) ([]*models.Project, error)
}

type TeamSource interface {
	FindActive(ctx context.Context) ([]*models.TeamMember, error)
}

type ReviewSource interface {
	FindVisible(ctx context.Context, limit int) ([]*models.ClientReview, error)
}

type ProjectCard struct {
	Index        int       `json:"index"`
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Platform     string    `json:"platform"`
	Technologies []string  `json:"technologies"`
	CoverURL     string    `json:"cover_url,omitempty"`
	Link         string    `json:"link,omitempty"`
}

// PortfolioView is the project grid. Fallback means the static grid should be shown instead.
type PortfolioView struct {
	Projects []ProjectCard `json:"projects"`
	Fallback bool          `json:"fallback"`
}

type Slide struct {
	URL    string `json:"url"`
	Alt    string `json:"alt"`
	Active bool   `json:"active"`
}

type ProjectDetail struct {
	ProjectCard
	Slides []Slide `json:"slides"`
}

type TeamCard struct {
	Name        string `json:"name"`
	Role        string `json:"role"`
	Bio         string `json:"bio"`
	ImageURL    string `json:"image_url,omitempty"`
	Initials    string `json:"initials"`
	LinkedInURL string `json:"linkedin_url,omitempty"`
	GithubURL   string `json:"github_url,omitempty"`
}

// TeamView lists active members, or carries a placeholder message when there are none.
type TeamView struct {
	Members []TeamCard `json:"members"`
	Message string     `json:"message,omitempty"`
}

type ReviewCard struct {
	ClientName     string `json:"client_name"`
	Text           string `json:"text"`
	RoleOrLocation string `json:"role_or_location,omitempty"`
	Rating         int    `json:"rating"`
	Stars          []bool `json:"stars"`
}

type ReviewSummary struct {
	Average string `json:"average"`
	Stars   []bool `json:"stars"`
	Count   int    `json:"count"`
}

type ReviewsView struct {
	Reviews  []ReviewCard   `json:"reviews"`
	Summary  *ReviewSummary `json:"summary,omitempty"`
	Fallback bool           `json:"fallback"`
}

type HomeView struct {
	Portfolio PortfolioView `json:"portfolio"`
	Team      TeamView      `json:"team"`
	Reviews   ReviewsView   `json:"reviews"`
}

type Options struct {
	ProjectLimit int
	ReviewLimit  int
}

// Renderer builds the read-only public views. Remote failures never produce an empty
// section; each view degrades to its fallback on its own.
type Renderer struct {
	projects     ProjectSource
	team         TeamSource
	reviews      ReviewSource
	templates    *template.Template
	projectLimit int
	reviewLimit  int
	logger       zerolog.Logger
}

func New(projects ProjectSource, team TeamSource, reviews ReviewSource, opts Options) (*Renderer, error) {
	tmpl, err := template.New("site").Funcs(template.FuncMap{
		"join": strings.Join,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	if opts.ProjectLimit <= 0 {
		opts.ProjectLimit = DefaultProjectLimit
	}
	if opts.ReviewLimit <= 0 {
		opts.ReviewLimit = DefaultReviewLimit
	}
	return &Renderer{
		projects:     projects,
		team:         team,
		reviews:      reviews,
		templates:    tmpl,
		projectLimit: opts.ProjectLimit,
		reviewLimit:  opts.ReviewLimit,
		logger:       log.With().Str("component", "renderer").Logger(),
	}, nil
}

func (r *Renderer) Portfolio(ctx context.Context) PortfolioView {
	projects, err := r.recentProjects(ctx)
	if err != nil {
		r.logger.Warn().Err(err).Msg("loading projects failed, keeping static portfolio")
		return PortfolioView{Projects: []ProjectCard{}, Fallback: true}
	}
	if len(projects) == 0 {
		return PortfolioView{Projects: []ProjectCard{}, Fallback: true}
	}

	cards := make([]ProjectCard, 0, len(projects))
	for i, p := range projects {
		cards = append(cards, projectCard(i, p))
	}
	return PortfolioView{Projects: cards}
}

// ProjectDetail resolves the card at index, in the same order as Portfolio, back to its record.
func (r *Renderer) ProjectDetail(ctx context.Context, index int) (ProjectDetail, error) {
	projects, err := r.recentProjects(ctx)
	if err != nil {
		return ProjectDetail{}, errs.NewDatabaseError("load", "projects", err)
	}
	if index < 0 || index >= len(projects) {
		return ProjectDetail{}, errs.NewNotFound("project")
	}

	p := projects[index]
	detail := ProjectDetail{ProjectCard: projectCard(index, p), Slides: []Slide{}}
	for i, url := range p.Images() {
		detail.Slides = append(detail.Slides, Slide{
			URL:    url,
			Alt:    fmt.Sprintf("%s screenshot %d", p.Title, i+1),
			Active: i == 0,
		})
	}
	return detail, nil
}

func (r *Renderer) recentProjects(ctx context.Context) ([]*models.Project, error) {
	if r.projects == nil {
		return nil, errs.NewConfigError("project source")
	}
	return r.projects.FindRecent(ctx, r.projectLimit)
}

func (r *Renderer) Team(ctx context.Context) TeamView {
	if r.team == nil {
		return TeamView{Members: []TeamCard{}, Message: teamPendingMessage}
	}
	members, err := r.team.FindActive(ctx)
	if err != nil {
		r.logger.Warn().Err(err).Msg("loading team failed")
		return TeamView{Members: []TeamCard{}, Message: teamPendingMessage}
	}
	if len(members) == 0 {
		return TeamView{Members: []TeamCard{}, Message: teamEmptyMessage}
	}

	cards := make([]TeamCard, 0, len(members))
	for _, m := range members {
		cards = append(cards, TeamCard{
			Name:        m.Name,
			Role:        m.Role,
			Bio:         m.Bio,
			ImageURL:    deref(m.ImageURL),
			Initials:    Initials(m.Name),
			LinkedInURL: deref(m.LinkedInURL),
			GithubURL:   deref(m.GithubURL),
		})
	}
	return TeamView{Members: cards}
}

func (r *Renderer) Reviews(ctx context.Context) ReviewsView {
	if r.reviews == nil {
		return ReviewsView{Reviews: []ReviewCard{}, Fallback: true}
	}
	reviews, err := r.reviews.FindVisible(ctx, r.reviewLimit)
	if err != nil {
		r.logger.Warn().Err(err).Msg("loading reviews failed, keeping static reviews")
		return ReviewsView{Reviews: []ReviewCard{}, Fallback: true}
	}
	if len(reviews) == 0 {
		return ReviewsView{Reviews: []ReviewCard{}, Fallback: true}
	}

	cards := make([]ReviewCard, 0, len(reviews))
	total := 0
	for _, rv := range reviews {
		rating := rv.DisplayRating()
		total += rating
		cards = append(cards, ReviewCard{
			ClientName:     rv.ClientName,
			Text:           rv.ReviewText,
			RoleOrLocation: deref(rv.RoleOrLocation),
			Rating:         rating,
			Stars:          stars(rating),
		})
	}
	avg := float64(total) / float64(len(reviews))
	return ReviewsView{
		Reviews: cards,
		Summary: &ReviewSummary{
			Average: fmt.Sprintf("%.1f", avg),
			Stars:   stars(int(math.Round(avg))),
			Count:   len(reviews),
		},
	}
}

// Execute renders one of the embedded templates: home, portfolio, project, team or reviews.
func (r *Renderer) Execute(w io.Writer, name string, data any) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

func projectCard(index int, p *models.Project) ProjectCard {
	cover := ""
	if images := p.Images(); len(images) > 0 {
		cover = images[0]
	}
	return ProjectCard{
		Index:        index,
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		Platform:     p.Platform,
		Technologies: p.TechnologyList(),
		CoverURL:     cover,
		Link:         deref(p.ProjectLink),
	}
}

// Initials takes the first letter of each word, upper-cased, at most two.
func Initials(name string) string {
	var sb strings.Builder
	count := 0
	for _, word := range strings.Fields(name) {
		if count == 2 {
			break
		}
		first, _ := utf8.DecodeRuneInString(word)
		sb.WriteRune(unicode.ToUpper(first))
		count++
	}
	return sb.String()
}

func stars(n int) []bool {
	out := make([]bool, models.MaxRating)
	for i := range out {
		out[i] = i < n
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
