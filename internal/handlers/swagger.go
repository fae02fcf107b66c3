package handlers

import (
	"html/template"

	"github.com/gin-gonic/gin"
)

var swaggerPage = template.Must(template.New("swagger").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>{{.Title}}</title>
    <link rel="stylesheet" type="text/css" href="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui.css">
    <style>body { margin:0; padding:0; }</style>
</head>
<body>
    <div id="swagger-ui"></div>
    <script src="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
    <script>
        window.onload = function() {
            window.ui = SwaggerUIBundle({
                url: "{{.SpecURL}}",
                dom_id: '#swagger-ui',
                deepLinking: true,
                persistAuthorization: true,
                requestInterceptor: (request) => {
                    const auth = request.headers.Authorization;
                    if (auth && !auth.startsWith('Bearer ') && !auth.startsWith('Token ')) {
                        request.headers.Authorization = 'Bearer ' + auth;
                    }
                    return request;
                }
            });
        };
    </script>
</body>
</html>
`))

// SwaggerUI serves the documentation page. A bare token pasted into the
// authorize dialog gets the Bearer prefix added.
func SwaggerUI(specURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		if err := swaggerPage.Execute(c.Writer, map[string]string{
			"Title":   "Onside API Documentation",
			"SpecURL": specURL,
		}); err != nil {
			_ = c.Error(err)
		}
	}
}
