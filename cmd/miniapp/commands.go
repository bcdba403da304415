package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/goccy/go-json"

	"course-miniapp/internal/common/config"
	apperrors "course-miniapp/internal/common/errors"
	"course-miniapp/internal/common/logger"
	"course-miniapp/internal/features/access"
	"course-miniapp/internal/features/communities"
	"course-miniapp/internal/features/courses"
	"course-miniapp/internal/features/favorites"
	"course-miniapp/internal/features/lessons"
	"course-miniapp/internal/features/profile"
	"course-miniapp/internal/features/progress"
	"course-miniapp/internal/features/reviews"
	"course-miniapp/internal/features/support"
	"course-miniapp/internal/normalize"
)

type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// command runs one action against the wired app; the result is printed as JSON.
type command func(ctx context.Context, a *app, args []string) (any, error)

var commands = map[string]map[string]command{
	"dev-id": {
		"get": noArgs(func(ctx context.Context, a *app) (any, error) {
			id, err := a.resolver.DevIdentifier(ctx)
			return map[string]int64{"telegram_id": id}, err
		}),
		"set": withID(func(ctx context.Context, a *app, id int64) (any, error) {
			if err := a.resolver.SetDevIdentifier(ctx, id); err != nil {
				return nil, err
			}
			return map[string]int64{"telegram_id": id}, nil
		}),
		"users": noArgs(func(ctx context.Context, a *app) (any, error) { return a.profile.DevUsers(ctx) }),
	},
	"courses": {
		"list": listCourses,
		"get":  withID(func(ctx context.Context, a *app, id int64) (any, error) { return a.courses.Get(ctx, id) }),
		"my":   noArgs(func(ctx context.Context, a *app) (any, error) { return a.courses.My(ctx) }),
	},
	"lessons": {
		"get":      withID(func(ctx context.Context, a *app, id int64) (any, error) { return a.lessons.Get(ctx, id) }),
		"complete": withID(func(ctx context.Context, a *app, id int64) (any, error) { return a.lessons.Complete(ctx, id) }),
		"next":     nextLesson,
	},
	"progress": {
		"course":  withID(func(ctx context.Context, a *app, id int64) (any, error) { return a.progress.ByCourse(ctx, id) }),
		"overall": noArgs(func(ctx context.Context, a *app) (any, error) { return a.progress.Overall(ctx) }),
	},
	"certificates": {
		"list":     noArgs(func(ctx context.Context, a *app) (any, error) { return a.certificates.List(ctx) }),
		"course":   withID(func(ctx context.Context, a *app, id int64) (any, error) { return a.certificates.ByCourse(ctx, id) }),
		"download": downloadCertificate,
	},
	"profile": {
		"get":    noArgs(func(ctx context.Context, a *app) (any, error) { return a.profile.Get(ctx) }),
		"update": updateProfile,
	},
	"communities": {
		"list": listCommunities,
		"get":  withID(func(ctx context.Context, a *app, id int64) (any, error) { return a.communities.Get(ctx, id) }),
	},
	"payments": {
		"create":  withID(func(ctx context.Context, a *app, id int64) (any, error) { return a.payments.Create(ctx, id) }),
		"status":  withID(func(ctx context.Context, a *app, id int64) (any, error) { return a.payments.Status(ctx, id) }),
		"history": noArgs(func(ctx context.Context, a *app) (any, error) { return a.payments.History(ctx) }),
	},
	"access": {
		"check":     noArgs(func(ctx context.Context, a *app) (any, error) { return a.access.Check(ctx) }),
		"course":    withID(func(ctx context.Context, a *app, id int64) (any, error) { return a.access.CheckCourse(ctx, id) }),
		"grant-dev": noArgs(func(ctx context.Context, a *app) (any, error) { return a.access.GrantDevAccess(ctx) }),
	},
	"leaderboard": {
		"top":     withLimit(func(ctx context.Context, a *app, limit int) (any, error) { return a.leaderboard.Top(ctx, limit) }),
		"courses": withLimit(func(ctx context.Context, a *app, limit int) (any, error) { return a.leaderboard.TopByCourses(ctx, limit) }),
		"me":      noArgs(func(ctx context.Context, a *app) (any, error) { return a.leaderboard.MyPosition(ctx) }),
	},
	"favorites": {
		"list":   noArgs(func(ctx context.Context, a *app) (any, error) { return a.favorites.List(ctx) }),
		"add":    withID(func(ctx context.Context, a *app, id int64) (any, error) { return a.favorites.Add(ctx, id) }),
		"remove": withID(func(ctx context.Context, a *app, id int64) (any, error) { return a.favorites.Remove(ctx, id) }),
		"check":  withID(func(ctx context.Context, a *app, id int64) (any, error) { return a.favorites.Check(ctx, id) }),
		"toggle": withID(toggleFavorite),
	},
	"reviews": {
		"list":   listReviews,
		"rating": withID(func(ctx context.Context, a *app, id int64) (any, error) { return a.reviews.Rating(ctx, id) }),
		"create": createReview,
		"delete": withID(func(ctx context.Context, a *app, id int64) (any, error) {
			msg, err := a.reviews.Delete(ctx, id)
			return map[string]string{"message": msg}, err
		}),
		"my": noArgs(func(ctx context.Context, a *app) (any, error) { return a.reviews.My(ctx) }),
	},
	"challenges": {
		"list": noArgs(func(ctx context.Context, a *app) (any, error) { return a.challenges.List(ctx) }),
		"get":  withID(func(ctx context.Context, a *app, id int64) (any, error) { return a.challenges.Get(ctx, id) }),
		"join": withID(func(ctx context.Context, a *app, id int64) (any, error) { return a.challenges.Join(ctx, id) }),
		"my":   noArgs(func(ctx context.Context, a *app) (any, error) { return a.challenges.My(ctx) }),
	},
	"achievements": {
		"list": noArgs(func(ctx context.Context, a *app) (any, error) { return a.achievements.List(ctx) }),
		"my":   noArgs(func(ctx context.Context, a *app) (any, error) { return a.achievements.My(ctx) }),
		"get":  withID(func(ctx context.Context, a *app, id int64) (any, error) { return a.achievements.Get(ctx, id) }),
	},
	"support": {
		"ticket": noArgs(func(ctx context.Context, a *app) (any, error) { return a.support.MyTicket(ctx) }),
		"open":   openTicket,
		"send":   sendSupportMessage,
	},
	"dashboard": {
		"": noArgs(dashboard),
	},
}

// run executes "<group> [action] [flags]" and writes the result to stdout.
func run(ctx context.Context, cfg *config.Config, args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return usagef("no command given")
	}
	group, ok := commands[args[0]]
	if !ok {
		return usagef("unknown command %q", args[0])
	}
	action, rest := "", args[1:]
	if _, single := group[""]; !single {
		if len(rest) == 0 {
			return usagef("%s: action required", args[0])
		}
		action, rest = rest[0], rest[1:]
	}
	cmd, ok := group[action]
	if !ok {
		return usagef("%s: unknown action %q", args[0], action)
	}

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.close()

	out, err := cmd(ctx, a, rest)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func usageText() string {
	var b strings.Builder
	b.WriteString("usage: miniapp <command> [action] [flags]\n\ncommands:\n")
	groups := make([]string, 0, len(commands))
	for g := range commands {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	for _, g := range groups {
		actions := make([]string, 0, len(commands[g]))
		for act := range commands[g] {
			if act != "" {
				actions = append(actions, act)
			}
		}
		sort.Strings(actions)
		fmt.Fprintf(&b, "  %-13s %s\n", g, strings.Join(actions, ", "))
	}
	return b.String()
}

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("miniapp", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return usagef("%v", err)
	}
	if fs.NArg() > 0 {
		return usagef("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	return nil
}

// setFlags reports which flags were given explicitly.
func setFlags(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

func noArgs(fn func(ctx context.Context, a *app) (any, error)) command {
	return func(ctx context.Context, a *app, args []string) (any, error) {
		if err := parse(newFlagSet(), args); err != nil {
			return nil, err
		}
		return fn(ctx, a)
	}
}

func withID(fn func(ctx context.Context, a *app, id int64) (any, error)) command {
	return func(ctx context.Context, a *app, args []string) (any, error) {
		fs := newFlagSet()
		id := fs.Int64("id", 0, "resource id")
		if err := parse(fs, args); err != nil {
			return nil, err
		}
		return fn(ctx, a, *id)
	}
}

func withLimit(fn func(ctx context.Context, a *app, limit int) (any, error)) command {
	return func(ctx context.Context, a *app, args []string) (any, error) {
		fs := newFlagSet()
		limit := fs.Int("limit", 0, "page size")
		if err := parse(fs, args); err != nil {
			return nil, err
		}
		return fn(ctx, a, *limit)
	}
}

func listCourses(ctx context.Context, a *app, args []string) (any, error) {
	fs := newFlagSet()
	category := fs.String("category", "", "category filter")
	top := fs.Bool("top", false, "only top courses")
	search := fs.String("search", "", "title search")
	if err := parse(fs, args); err != nil {
		return nil, err
	}
	filter := courses.Filter{Category: *category, Search: *search}
	if setFlags(fs)["top"] {
		filter.IsTop = top
	}
	return a.courses.List(ctx, filter)
}

// nextLesson looks up the lesson after -lesson within -course.
func nextLesson(ctx context.Context, a *app, args []string) (any, error) {
	fs := newFlagSet()
	courseID := fs.Int64("course", 0, "course id")
	lessonID := fs.Int64("lesson", 0, "current lesson id")
	if err := parse(fs, args); err != nil {
		return nil, err
	}
	course, err := a.courses.Get(ctx, *courseID)
	if err != nil {
		return nil, err
	}
	next, ok := lessons.NextLesson(course.Lessons, *lessonID)
	if !ok {
		return map[string]any{"next": nil}, nil
	}
	return map[string]any{"next": next}, nil
}

func downloadCertificate(ctx context.Context, a *app, args []string) (any, error) {
	fs := newFlagSet()
	id := fs.Int64("id", 0, "certificate id")
	dir := fs.String("dir", ".", "target directory")
	if err := parse(fs, args); err != nil {
		return nil, err
	}
	raw, err := a.certificates.Download(ctx, *id)
	if err != nil {
		return nil, err
	}
	name := filepath.Base(raw.Filename)
	if raw.Filename == "" || name == "." || name == "/" {
		name = fmt.Sprintf("certificate_%d.pdf", *id)
	}
	path := filepath.Join(*dir, name)
	if err := os.WriteFile(path, raw.Body, 0o644); err != nil {
		return nil, apperrors.Wrapf(err, apperrors.ErrCodeInternal, "Failed to write certificate to %s", path)
	}
	logger.Info().Str("file", path).Int("bytes", len(raw.Body)).Msg("Certificate saved")
	return map[string]any{"file": path, "bytes": len(raw.Body), "content_type": raw.ContentType}, nil
}

func updateProfile(ctx context.Context, a *app, args []string) (any, error) {
	fs := newFlagSet()
	name := fs.String("name", "", "full name")
	phone := fs.String("phone", "", "phone number")
	email := fs.String("email", "", "email")
	city := fs.String("city", "", "city")
	if err := parse(fs, args); err != nil {
		return nil, err
	}
	set := setFlags(fs)
	if len(set) == 0 {
		return nil, usagef("profile update: nothing to update")
	}
	var req profile.UpdateRequest
	if set["name"] {
		req.FullName = name
	}
	if set["phone"] {
		req.Phone = phone
	}
	if set["email"] {
		req.Email = email
	}
	if set["city"] {
		req.City = city
	}
	return a.profile.Update(ctx, req)
}

func listCommunities(ctx context.Context, a *app, args []string) (any, error) {
	fs := newFlagSet()
	var filter communities.Filter
	fs.StringVar(&filter.Type, "type", "", "city or profession")
	fs.StringVar(&filter.City, "city", "", "city filter")
	fs.StringVar(&filter.Category, "category", "", "category filter")
	if err := parse(fs, args); err != nil {
		return nil, err
	}
	return a.communities.List(ctx, filter)
}

func toggleFavorite(ctx context.Context, a *app, id int64) (any, error) {
	tg := favorites.NewToggler(a.favorites)
	if _, err := tg.Refresh(ctx, id); err != nil {
		return nil, err
	}
	fav, err := tg.Toggle(ctx, id)
	if err != nil {
		return nil, err
	}
	return favorites.State{IsFavorite: normalize.Some(fav)}, nil
}

func listReviews(ctx context.Context, a *app, args []string) (any, error) {
	fs := newFlagSet()
	courseID := fs.Int64("course", 0, "course id")
	limit := fs.Int("limit", 0, "page size")
	offset := fs.Int("offset", 0, "page offset")
	if err := parse(fs, args); err != nil {
		return nil, err
	}
	return a.reviews.ByCourse(ctx, *courseID, *limit, *offset)
}

func createReview(ctx context.Context, a *app, args []string) (any, error) {
	fs := newFlagSet()
	courseID := fs.Int64("course", 0, "course id")
	rating := fs.Int("rating", 0, "1 to 5")
	comment := fs.String("comment", "", "review text")
	if err := parse(fs, args); err != nil {
		return nil, err
	}
	req := reviews.CreateRequest{Rating: *rating}
	if setFlags(fs)["comment"] {
		req.Comment = comment
	}
	return a.reviews.Create(ctx, *courseID, req)
}

func openTicket(ctx context.Context, a *app, args []string) (any, error) {
	fs := newFlagSet()
	subject := fs.String("subject", "", "ticket subject")
	message := fs.String("message", "", "first message")
	if err := parse(fs, args); err != nil {
		return nil, err
	}
	req := support.CreateTicketRequest{Message: *message}
	if setFlags(fs)["subject"] {
		req.Subject = subject
	}
	return a.support.CreateTicket(ctx, req)
}

func sendSupportMessage(ctx context.Context, a *app, args []string) (any, error) {
	fs := newFlagSet()
	message := fs.String("message", "", "message text")
	if err := parse(fs, args); err != nil {
		return nil, err
	}
	return a.support.SendMessage(ctx, *message)
}

// dashboardView is what the home screen loads on start.
type dashboardView struct {
	Profile  *profile.Profile  `json:"profile"`
	Access   *access.Status    `json:"access"`
	Courses  []courses.Course  `json:"courses"`
	Progress *progress.Overall `json:"progress"`
	Errors   map[string]string `json:"errors,omitempty"`
}

// dashboard loads the home screen panels concurrently. A failing panel is
// reported in Errors and does not fail the others.
func dashboard(ctx context.Context, a *app) (any, error) {
	var (
		view dashboardView
		mu   sync.Mutex
		wg   sync.WaitGroup
	)
	fail := func(panel string, err error) {
		mu.Lock()
		defer mu.Unlock()
		if view.Errors == nil {
			view.Errors = make(map[string]string)
		}
		view.Errors[panel] = err.Error()
		logger.Warn().Err(err).Str("panel", panel).Msg("Dashboard panel failed")
	}

	wg.Add(4)
	go func() {
		defer wg.Done()
		p, err := a.profile.Get(ctx)
		if err != nil {
			fail("profile", err)
			return
		}
		view.Profile = p
	}()
	go func() {
		defer wg.Done()
		st, err := a.access.Check(ctx)
		if err != nil {
			fail("access", err)
			return
		}
		view.Access = st
	}()
	go func() {
		defer wg.Done()
		list, err := a.courses.List(ctx, courses.Filter{})
		if err != nil {
			fail("courses", err)
			return
		}
		view.Courses = list
	}()
	go func() {
		defer wg.Done()
		o, err := a.progress.Overall(ctx)
		if err != nil {
			fail("progress", err)
			return
		}
		view.Progress = o
	}()
	wg.Wait()

	if view.Courses == nil {
		view.Courses = []courses.Course{}
	}
	return view, nil
}
