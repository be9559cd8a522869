package web

import (
	"net/http"
	"time"

	"shelflog/internal/server/models"
	"shelflog/internal/validatex"
)

const formDateFormat = "2006-01-02"

// CredentialsForm carries the registration and login form fields through a
// redisplay cycle. The password is never echoed back.
type CredentialsForm struct {
	Username string
	Password string
}

func parseCredentialsForm(r *http.Request) CredentialsForm {
	return CredentialsForm{
		Username: r.FormValue("username"),
		Password: r.FormValue("password"),
	}
}

// BookForm holds the raw string values of the book form, so invalid input
// can be redisplayed exactly as submitted.
type BookForm struct {
	Title      string
	Author     string
	FinishDate string
	Media      string
}

func parseBookForm(r *http.Request) BookForm {
	return BookForm{
		Title:      r.FormValue("title"),
		Author:     r.FormValue("author"),
		FinishDate: r.FormValue("finishDate"),
		Media:      r.FormValue("media"),
	}
}

func bookFormFromModel(b *models.Book) BookForm {
	return BookForm{
		Title:      b.Title,
		Author:     b.Author,
		FinishDate: b.FinishDate.Format(formDateFormat),
		Media:      b.Media,
	}
}

// Attrs converts the form to validated model attributes. An unparseable
// finish date is reported as a field error without touching the service
// layer.
func (f BookForm) Attrs() (*models.BookAttrs, validatex.FieldErrors) {
	attrs := &models.BookAttrs{
		Title:  f.Title,
		Author: f.Author,
		Media:  f.Media,
	}

	if f.FinishDate != "" {
		d, err := time.Parse(formDateFormat, f.FinishDate)
		if err != nil {
			ferrs := validatex.FieldErrors{}
			ferrs.Add("finishDate", "is not a valid date")
			return nil, ferrs
		}
		attrs.FinishDate = d
	}

	if ferrs := validatex.Struct(attrs); ferrs != nil {
		return nil, ferrs
	}

	return attrs, nil
}
