// Package contactform is the contact form controller.
//
// A Form holds what the visitor typed, validates it with the rules from
// package contact and submits it once through a Transport. The outcome is
// reported through a Notifier. There is no automatic retry and no offline
// queue: a failed submission keeps its values so the visitor can try again.
//
//	form := contactform.New(
//		contactform.NewHTTPTransport("https://example.com/api/contact"),
//		contactform.WithNotifier(contactform.NotifierFunc(func(n contactform.Notification) {
//			fmt.Println(n.Message)
//		})),
//	)
//	_ = form.Set(contact.FieldName, "Ada")
//	...
//	if err := form.Submit(ctx); errors.Is(err, contactform.ErrInvalid) {
//		// show form.Errors() next to the fields
//	}
//
// Each submission carries an idempotency key. Retrying the same values reuses
// it; editing a field or a successful send clears it.
package contactform
