package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const homePage = `<!doctype html>
<html lang="en">
<head><meta charset="utf-8"><title>Jobs API</title></head>
<body>
<h1>Jobs API</h1>
<p>Track your job applications. Register at <code>POST /api/v1/auth/register</code>, then send the returned token as <code>Authorization: Bearer &lt;token&gt;</code> to <code>/api/v1/jobs</code>.</p>
</body>
</html>
`

// GET /
func Home(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(homePage))
}
