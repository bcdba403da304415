package favorites

import "course-miniapp/internal/normalize"

var StateShape = normalize.NewShape("FavoriteState",
	normalize.String("message", ""),
	normalize.OptionalBool("is_favorite"),
)

// State is the server's view of one favorite flag. IsFavorite is unset when
// the reply carried no boolean.
type State struct {
	Message    string                 `json:"message"`
	IsFavorite normalize.Option[bool] `json:"is_favorite"`
}

func stateFrom(r normalize.Record) State {
	return State{Message: r.Str("message"), IsFavorite: r.OptBool("is_favorite")}
}
