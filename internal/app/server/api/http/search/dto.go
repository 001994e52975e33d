package search

import itemAPI "passvault/internal/app/server/api/http/item"

type searchInput struct {
	Q string `query:"q" required:"true" doc:"Precomputed title HMAC to match exactly"`
}

type searchOutput struct {
	Body []itemAPI.ItemMeta
}
