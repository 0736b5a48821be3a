// Package mailcloud is a Go client for the Customers Mail Cloud
// transactional email API.
//
// A Client holds one API user/key pair and exposes the send endpoint
// through TransactionEmail, plus the delivery, bounce, statistics, audit
// log and unsubscribe endpoints. Every call validates its input locally,
// posts a JSON (or, with attachments, multipart) body and maps the answer
// onto typed records.
//
// # Basic Usage
//
//	client, err := mailcloud.New(os.Getenv("API_USER"), os.Getenv("API_KEY"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	email := client.TransactionEmail().
//		AddTo("user@example.com", "User", map[string]string{"customer": "User"}).
//		SetFrom("info@example.com", "Example").
//		SetSubject("Welcome").
//		SetText("Hello ((#customer#))")
//
//	if err := email.Send(context.Background()); err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(email.ID)
//
// # Errors
//
// Input problems are reported as *ValidationError before any request is
// made. An "errors" array in a response becomes an *APIError carrying
// every code, field and message. Failures below the API contract become a
// *TransportError whose Kind tells client, server and network failures
// apart.
//
// # Features
//
//   - Case-insensitive mapping of response fields onto records
//   - Per-email sub-domain selection
//   - Optional client-side rate limiting
//   - Distributed tracing with OpenTelemetry
//   - Structured logging with log/slog
package mailcloud
