package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/mkalnins/volleyball-league/handlers"
	"github.com/mkalnins/volleyball-league/middleware"
	"github.com/mkalnins/volleyball-league/models"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	Club       *handlers.ClubHandler
	Team       *handlers.TeamHandler
	Player     *handlers.PlayerHandler
	Tournament *handlers.TournamentHandler
	Match      *handlers.MatchHandler
	Sponsor    *handlers.SponsorHandler
	Transfer   *handlers.TransferHandler
	Notice     *handlers.NoticeHandler
	CSV        *handlers.CSVHandler
	WebSocket  *handlers.WebSocketHandler
}

// SetupRoutes wires the full HTTP surface. Reads are public. Staff
// tokens cover fixtures, scores and notices; everything else that
// mutates state, including user management and knockout seeding, needs
// an admin token.
func SetupRoutes(router *chi.Mux, h Handlers, jwtSecret string) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	secret := []byte(jwtSecret)
	authenticated := middleware.Authenticate(secret)
	staffOnly := middleware.Authorize(models.RoleAdmin, models.RoleStaff)
	adminOnly := middleware.Authorize(models.RoleAdmin)

	router.Get("/swagger/*", httpSwagger.Handler())

	router.Post("/auth/login", h.Auth.Login)
	router.With(authenticated).Get("/auth/me", h.Auth.Me)

	router.Route("/users", func(r chi.Router) {
		r.Use(authenticated, adminOnly)
		r.Post("/", h.Auth.CreateUser)
		r.Get("/", h.Auth.ListUsers)
		r.Patch("/{userID}/role", h.Auth.UpdateUserRole)
		r.Delete("/{userID}", h.Auth.DeleteUser)
	})

	router.Route("/clubs", func(r chi.Router) {
		r.Get("/", h.Club.ListClubs)
		r.Get("/{clubID}", h.Club.GetClubByID)

		r.Group(func(r chi.Router) {
			r.Use(authenticated, adminOnly)
			r.Post("/", h.Club.CreateClub)
			r.Put("/{clubID}", h.Club.UpdateClub)
			r.Post("/{clubID}/logo", h.Club.UploadLogo)
			r.Delete("/{clubID}", h.Club.DeleteClub)
		})
	})

	router.Route("/teams", func(r chi.Router) {
		r.Get("/", h.Team.ListTeams)
		r.Get("/{teamID}", h.Team.GetTeamByID)
		r.Get("/{teamID}/players", h.Team.ListTeamPlayers)

		r.Group(func(r chi.Router) {
			r.Use(authenticated, adminOnly)
			r.Post("/", h.Team.CreateTeam)
			r.Put("/{teamID}", h.Team.UpdateTeam)
			r.Post("/{teamID}/logo", h.Team.UploadLogo)
			r.Delete("/{teamID}", h.Team.DeleteTeam)
		})
	})

	router.Route("/players", func(r chi.Router) {
		r.Get("/", h.Player.ListPlayers)
		r.Get("/{playerID}", h.Player.GetPlayerByID)
		r.Get("/{playerID}/transfers", h.Player.ListPlayerTransfers)

		r.Group(func(r chi.Router) {
			r.Use(authenticated, adminOnly)
			r.Post("/", h.Player.CreatePlayer)
			r.Put("/{playerID}", h.Player.UpdatePlayer)
			r.Delete("/{playerID}", h.Player.DeletePlayer)
		})
	})

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", h.Tournament.ListTournaments)
		r.Get("/{tournamentID}", h.Tournament.GetTournamentByID)
		r.Get("/{tournamentID}/standings", h.Tournament.GetStandings)
		r.Get("/{tournamentID}/matches", h.Match.ListTournamentMatches)
		r.Get("/{tournamentID}/awards", h.Tournament.ListAwards)
		r.Get("/{tournamentID}/standings.csv", h.CSV.ExportStandings)
		r.Get("/{tournamentID}/fixtures.csv", h.CSV.ExportFixtures)

		// Fixture management is staff work.
		r.Group(func(r chi.Router) {
			r.Use(authenticated, staffOnly)
			r.Post("/{tournamentID}/matches", h.Match.CreateMatch)
			r.Post("/{tournamentID}/fixtures/import", h.CSV.ImportFixtures)
		})

		// Tournament lifecycle and awards stay with the admin.
		r.Group(func(r chi.Router) {
			r.Use(authenticated, adminOnly)
			r.Post("/", h.Tournament.CreateTournament)
			r.Put("/{tournamentID}", h.Tournament.UpdateTournament)
			r.Delete("/{tournamentID}", h.Tournament.DeleteTournament)

			r.Post("/{tournamentID}/teams/{teamID}", h.Tournament.RegisterTeam)
			r.Delete("/{tournamentID}/teams/{teamID}", h.Tournament.UnregisterTeam)

			r.Post("/{tournamentID}/advance", h.Tournament.AdvanceToKnockout)
			r.Post("/{tournamentID}/complete", h.Tournament.CompleteTournament)

			r.Post("/{tournamentID}/awards", h.Tournament.GrantAward)
			r.Delete("/{tournamentID}/awards/{awardID}", h.Tournament.RevokeAward)
		})
	})

	router.Route("/matches", func(r chi.Router) {
		r.Get("/{matchID}", h.Match.GetMatchByID)

		r.Group(func(r chi.Router) {
			r.Use(authenticated, staffOnly)
			r.Patch("/{matchID}/schedule", h.Match.UpdateSchedule)
			r.Post("/{matchID}/start", h.Match.StartMatch)
			r.Patch("/{matchID}/score", h.Match.UpdateLiveScore)
			r.Post("/{matchID}/score", h.Match.RecordScore)
			r.Delete("/{matchID}", h.Match.DeleteMatch)
		})
	})

	router.Route("/sponsors", func(r chi.Router) {
		r.Get("/", h.Sponsor.ListSponsors)
		r.Get("/{sponsorID}", h.Sponsor.GetSponsorByID)

		r.Group(func(r chi.Router) {
			r.Use(authenticated, adminOnly)
			r.Post("/", h.Sponsor.CreateSponsor)
			r.Put("/{sponsorID}", h.Sponsor.UpdateSponsor)
			r.Post("/{sponsorID}/logo", h.Sponsor.UploadLogo)
			r.Delete("/{sponsorID}", h.Sponsor.DeleteSponsor)
		})
	})

	router.Route("/transfers", func(r chi.Router) {
		r.Get("/", h.Transfer.ListTransfers)
		r.Get("/{transferID}", h.Transfer.GetTransferByID)

		r.Group(func(r chi.Router) {
			r.Use(authenticated, adminOnly)
			r.Post("/", h.Transfer.RecordTransfer)
			r.Delete("/{transferID}", h.Transfer.DeleteTransfer)
		})
	})

	router.Route("/notices", func(r chi.Router) {
		r.Get("/", h.Notice.ListNotices)
		r.Get("/{noticeID}", h.Notice.GetNoticeByID)

		r.Group(func(r chi.Router) {
			r.Use(authenticated, staffOnly)
			r.Post("/", h.Notice.CreateNotice)
			r.Put("/{noticeID}", h.Notice.UpdateNotice)
			r.Delete("/{noticeID}", h.Notice.DeleteNotice)
		})
	})

	router.Get("/ws/matches/{matchID}", h.WebSocket.ServeMatch)
}
