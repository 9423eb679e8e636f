package uploads

import (
	"bytes"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/h2non/filetype"
	"github.com/huddleapp/huddle/internal/api/rest/middleware"
	"github.com/huddleapp/huddle/internal/api/rest/rest"
	"github.com/huddleapp/huddle/internal/errors"
	"github.com/huddleapp/huddle/internal/global"
)

type Route struct {
	Ctx global.Context
}

func New(gctx global.Context) rest.Route {
	return &Route{gctx}
}

func (r *Route) Config() rest.RouteConfig {
	return rest.RouteConfig{
		URI:    "/uploads",
		Method: rest.POST,
		Middleware: []rest.Middleware{
			middleware.RequireAuth(),
		},
	}
}

type uploadResponse struct {
	URL string `json:"url"`
}

// Handler stores a chat image. The payload is the raw file body; its
// type is sniffed from the magic bytes, never trusted from headers.
func (r *Route) Handler(ctx *rest.Ctx) rest.APIError {
	actor, _ := ctx.GetActor()

	body := ctx.Request.Body()
	if len(body) == 0 {
		return errors.ErrMissingRequiredField().SetDetail("empty file body")
	}

	kind, err := filetype.Match(body)
	if err != nil || !filetype.IsImage(body) {
		return errors.ErrInvalidRequest().SetDetail("unsupported file type")
	}

	name := path.Base(string(ctx.QueryArgs().Peek("name")))
	name = strings.TrimSuffix(name, path.Ext(name))
	if name == "" || name == "." {
		name = "upload"
	}

	key := fmt.Sprintf("chat-images/%s-%d-%s.%s",
		actor.ID.Hex(),
		time.Now().Unix(),
		name,
		kind.Extension,
	)

	if err := r.Ctx.Inst().S3.UploadFile(ctx, &s3manager.UploadInput{
		Bucket:       aws.String(r.Ctx.Config().S3.Bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(body),
		ContentType:  aws.String(kind.MIME.Value),
		ACL:          aws.String("public-read"),
		CacheControl: aws.String("public, max-age=31536000"),
	}); err != nil {
		ctx.Log().Errorw("failed to upload file", "error", err)

		return errors.ErrInternalServerError().SetDetail("upload failed")
	}

	return ctx.JSON(rest.Created, uploadResponse{
		URL: fmt.Sprintf("%s/%s", r.Ctx.Config().S3.PublicURL, key),
	})
}
