package services

import (
	"context"
	"fmt"
	"time"

	"emosound/config"
	"emosound/internal/logger"
	"emosound/internal/models"

	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// Search queries tuned per emotion. Emotions without an entry fall back to
// "<emotion> music".
var emotionQueries = map[string]string{
	"happy":       "happy upbeat positive genre:pop",
	"sad":         "sad melancholy emotional genre:indie",
	"angry":       "angry aggressive rock metal",
	"excited":     "excited energetic party dance",
	"calm":        "calm peaceful relaxing ambient",
	"anxious":     "anxious nervous worried tense",
	"romantic":    "romantic love ballad intimate",
	"energetic":   "energetic upbeat dance workout",
	"melancholic": "melancholic nostalgic indie folk",
	"confident":   "confident empowering strong motivated",
	"neutral":     "chill mellow easy listening",
	"fear":        "calm soothing peaceful reassuring",
	"surprise":    "exciting unexpected dynamic",
	"disgust":     "calm relaxing peaceful",
}

type audioTargets struct {
	valence      float64
	energy       float64
	danceability float64
}

// Audio feature targets used for personalized recommendations.
var emotionAudioTargets = map[string]audioTargets{
	"happy":       {valence: 0.9, energy: 0.7, danceability: 0.7},
	"sad":         {valence: 0.2, energy: 0.3, danceability: 0.3},
	"angry":       {valence: 0.3, energy: 0.9, danceability: 0.5},
	"excited":     {valence: 0.8, energy: 0.9, danceability: 0.8},
	"calm":        {valence: 0.5, energy: 0.2, danceability: 0.3},
	"anxious":     {valence: 0.4, energy: 0.3, danceability: 0.3},
	"romantic":    {valence: 0.6, energy: 0.4, danceability: 0.5},
	"energetic":   {valence: 0.7, energy: 0.95, danceability: 0.8},
	"melancholic": {valence: 0.25, energy: 0.35, danceability: 0.35},
	"confident":   {valence: 0.75, energy: 0.8, danceability: 0.65},
	"neutral":     {valence: 0.5, energy: 0.5, danceability: 0.5},
}

// SpotifyService talks to the Spotify Web API. Catalog search uses app
// credentials, personalized calls use the user's linked account.
type SpotifyService struct {
	config config.Config
	auth   *spotifyauth.Authenticator
	creds  *clientcredentials.Config
	log    logger.Logger
}

func NewSpotifyService(config config.Config) *SpotifyService {
	log := logger.New("SpotifyService")

	var auth *spotifyauth.Authenticator
	var creds *clientcredentials.Config
	if config.SpotifyClientID != "" {
		auth = spotifyauth.New(
			spotifyauth.WithClientID(config.SpotifyClientID),
			spotifyauth.WithClientSecret(config.SpotifyClientSecret),
			spotifyauth.WithRedirectURL(config.SpotifyRedirectURI),
			spotifyauth.WithScopes(
				spotifyauth.ScopeUserReadPrivate,
				spotifyauth.ScopeUserTopRead,
				spotifyauth.ScopePlaylistReadPrivate,
			),
		)
		creds = &clientcredentials.Config{
			ClientID:     config.SpotifyClientID,
			ClientSecret: config.SpotifyClientSecret,
			TokenURL:     spotifyauth.TokenURL,
		}
	} else {
		log.Warn("spotify credentials not configured, catalog search disabled")
	}

	return &SpotifyService{
		config: config,
		auth:   auth,
		creds:  creds,
		log:    log,
	}
}

// Enabled reports whether app credentials are configured.
func (s *SpotifyService) Enabled() bool {
	return s.creds != nil
}

func (s *SpotifyService) appClient(ctx context.Context) (*spotify.Client, error) {
	token, err := s.creds.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching app token: %w", err)
	}
	httpClient := spotifyauth.New().Client(ctx, token)
	return spotify.New(httpClient, spotify.WithRetry(true)), nil
}

func (s *SpotifyService) userClient(ctx context.Context, user *models.User) (*spotify.Client, error) {
	if !user.HasSpotifyLinked() {
		return nil, fmt.Errorf("user has no linked spotify account")
	}
	token := &oauth2.Token{
		AccessToken:  *user.SpotifyAccessToken,
		RefreshToken: *user.SpotifyRefreshToken,
		Expiry:       *user.SpotifyTokenExpires,
		TokenType:    "Bearer",
	}
	return spotify.New(s.auth.Client(ctx, token), spotify.WithRetry(true)), nil
}

// QueryForEmotion returns the catalog search query used for an emotion.
func QueryForEmotion(emotion string) string {
	if query, ok := emotionQueries[emotion]; ok {
		return query
	}
	return emotion + " music"
}

// SearchByEmotion searches the catalog for tracks matching the emotion.
// Failures are logged and return an empty list so callers can fall back to
// curated playlists.
func (s *SpotifyService) SearchByEmotion(
	ctx context.Context,
	emotion string,
	limit int,
) []models.Song {
	log := s.log.Function("SearchByEmotion")

	if !s.Enabled() {
		return nil
	}

	client, err := s.appClient(ctx)
	if err != nil {
		log.Warn("failed to build spotify client", "error", err)
		return nil
	}

	results, err := client.Search(
		ctx,
		QueryForEmotion(emotion),
		spotify.SearchTypeTrack,
		spotify.Limit(limit),
	)
	if err != nil {
		log.Warn("catalog search failed", "emotion", emotion, "error", err)
		return nil
	}
	if results.Tracks == nil {
		return nil
	}

	songs := make([]models.Song, 0, len(results.Tracks.Tracks))
	for _, track := range results.Tracks.Tracks {
		songs = append(songs, trackToSong(track))
	}

	log.Debug("catalog search complete", "emotion", emotion, "count", len(songs))
	return songs
}

// RecommendForUser returns personalized tracks seeded from the user's top
// tracks with audio feature targets tuned to the emotion. Falls back to
// catalog search when the user has no linked account or the call fails.
func (s *SpotifyService) RecommendForUser(
	ctx context.Context,
	user *models.User,
	emotion string,
	limit int,
) []models.Song {
	log := s.log.Function("RecommendForUser")

	if !s.Enabled() || user == nil || !user.HasSpotifyLinked() {
		return s.SearchByEmotion(ctx, emotion, limit)
	}

	client, err := s.userClient(ctx, user)
	if err != nil {
		log.Warn("failed to build user client", "userID", user.ID, "error", err)
		return s.SearchByEmotion(ctx, emotion, limit)
	}

	topTracks, err := client.CurrentUsersTopTracks(ctx, spotify.Limit(5))
	if err != nil || len(topTracks.Tracks) == 0 {
		log.Warn("failed to get top tracks, using catalog search", "userID", user.ID, "error", err)
		return s.SearchByEmotion(ctx, emotion, limit)
	}

	seedIDs := make([]spotify.ID, 0, len(topTracks.Tracks))
	for _, track := range topTracks.Tracks {
		seedIDs = append(seedIDs, track.ID)
	}

	targets, ok := emotionAudioTargets[emotion]
	if !ok {
		targets = emotionAudioTargets["neutral"]
	}
	attributes := spotify.NewTrackAttributes().
		TargetValence(targets.valence).
		TargetEnergy(targets.energy).
		TargetDanceability(targets.danceability)

	recommendations, err := client.GetRecommendations(
		ctx,
		spotify.Seeds{Tracks: seedIDs},
		attributes,
		spotify.Limit(limit),
	)
	if err != nil {
		log.Warn("recommendation call failed, using catalog search", "userID", user.ID, "error", err)
		return s.SearchByEmotion(ctx, emotion, limit)
	}

	songs := make([]models.Song, 0, len(recommendations.Tracks))
	for _, track := range recommendations.Tracks {
		songs = append(songs, simpleTrackToSong(track))
	}

	return songs
}

// UserPlaylists lists the linked user's Spotify playlists.
func (s *SpotifyService) UserPlaylists(
	ctx context.Context,
	user *models.User,
	limit int,
) ([]SpotifyPlaylist, error) {
	log := s.log.Function("UserPlaylists")

	client, err := s.userClient(ctx, user)
	if err != nil {
		return nil, err
	}

	page, err := client.CurrentUsersPlaylists(ctx, spotify.Limit(limit))
	if err != nil {
		return nil, log.Err("failed to list playlists", err, "userID", user.ID)
	}

	playlists := make([]SpotifyPlaylist, 0, len(page.Playlists))
	for _, playlist := range page.Playlists {
		entry := SpotifyPlaylist{
			ID:          string(playlist.ID),
			Name:        playlist.Name,
			TrackCount:  int(playlist.Tracks.Total),
			ExternalURL: playlist.ExternalURLs["spotify"],
		}
		if len(playlist.Images) > 0 {
			entry.Image = playlist.Images[0].URL
		}
		playlists = append(playlists, entry)
	}

	return playlists, nil
}

type SpotifyPlaylist struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	TrackCount  int    `json:"trackCount"`
	Image       string `json:"image,omitempty"`
	ExternalURL string `json:"externalUrl,omitempty"`
}

// AuthURL builds the account-linking consent URL.
func (s *SpotifyService) AuthURL(state string) (string, error) {
	if s.auth == nil {
		return "", fmt.Errorf("spotify credentials not configured")
	}
	return s.auth.AuthURL(state), nil
}

// ExchangeCode trades an authorization code for user tokens.
func (s *SpotifyService) ExchangeCode(
	ctx context.Context,
	code string,
) (accessToken, refreshToken string, expires time.Time, err error) {
	log := s.log.Function("ExchangeCode")

	if s.auth == nil {
		return "", "", time.Time{}, fmt.Errorf("spotify credentials not configured")
	}

	token, err := s.auth.Exchange(ctx, code)
	if err != nil {
		return "", "", time.Time{}, log.Err("failed to exchange authorization code", err)
	}

	return token.AccessToken, token.RefreshToken, token.Expiry, nil
}

func trackToSong(track spotify.FullTrack) models.Song {
	song := simpleTrackToSong(track.SimpleTrack)
	popularity := int(track.Popularity)
	song.Popularity = &popularity
	if len(track.Album.Images) > 0 {
		song.AlbumImage = track.Album.Images[0].URL
	}
	song.Album = track.Album.Name
	return song
}

func simpleTrackToSong(track spotify.SimpleTrack) models.Song {
	spotifyID := string(track.ID)
	duration := int(track.Duration)

	artist := ""
	if len(track.Artists) > 0 {
		artist = track.Artists[0].Name
	}

	song := models.Song{
		Title:       track.Name,
		Artist:      artist,
		SpotifyID:   &spotifyID,
		PreviewURL:  track.PreviewURL,
		ExternalURL: track.ExternalURLs["spotify"],
		DurationMS:  &duration,
	}
	if len(track.Album.Images) > 0 {
		song.AlbumImage = track.Album.Images[0].URL
	}
	song.Album = track.Album.Name
	return song
}
