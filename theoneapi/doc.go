// Package theoneapi provides a client for The One API (https://the-one-api.dev),
// a read-only catalog of the Lord of the Rings movies, characters, books,
// chapters and quotes.
//
// # Usage
//
// Create a client with your API key:
//
//	logger := zerolog.New(os.Stderr)
//	client := theoneapi.NewClient("your-api-key", logger)
//
//	ctx := context.Background()
//	hobbits, err := client.ListCharacters(ctx, &theoneapi.RequestOptions{
//		Limit:  10,
//		Sort:   theoneapi.SortAsc("name"),
//		Filter: map[string]string{"race": "Hobbit"},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Lookups by id return a one element ListResponse, as the upstream does:
//
//	resp, err := client.GetMovie(ctx, "5cd95395de30eff6ebccde56")
//	movie, ok := resp.First()
//
// # Requests
//
// Every accessor funnels through a single GET builder. RequestOptions fields
// left at their zero value are not sent. Filter entries are passed through
// as query parameters without interpretation. The client does not retry,
// cache or rate limit, and enforces no timeout beyond what the caller's
// context and http.Client impose.
//
// # Error Handling
//
// Failures are returned as *Error with a Kind:
//
//   - KindTransport: the request never produced a response
//   - KindAPI: non-2xx status; Error() is exactly the upstream message
//   - KindMalformedError: non-2xx status whose body is not an ErrorResponse
//   - KindDecode: 2xx status whose body does not match the result type
//
//	var apiErr *theoneapi.Error
//	if errors.As(err, &apiErr) && apiErr.IsUnauthorized() {
//		// Handle auth failure
//	}
package theoneapi
