/* Copyright (c) 2025 FuturesLab <https://futureslab.github.io>
 * SPDX-License-Identifier: BSD-3-Clause */
package web

import "html/template"

// Pages are compiled in; every page shares the head/navbar/footer partials.
var siteTpl = template.Must(template.New("site").Parse(
	headTpl + navbarTpl + footerTpl + homeTpl + researchTpl + peopleTpl + contactTpl + bugsTpl))

const headTpl = `{{define "head"}}<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8" />
<meta name="viewport" content="width=device-width, initial-scale=1" />
<title>{{.}} — FuturesLab</title>
<style>
body{font-family:system-ui,-apple-system,Segoe UI,Roboto;max-width:1000px;margin:0 auto;padding:1rem}
nav{display:flex;gap:1rem;border-bottom:1px solid #ddd;padding-bottom:.5rem;margin-bottom:1rem}
nav a{text-decoration:none;color:#224}
table{border-collapse:collapse;width:100%}
th,td{border:1px solid #ddd;padding:6px;text-align:left}
th a{color:#224}
td.error{color:#a00;text-align:center}
.pager{margin-top:.5rem}
.pager a{margin-right:.4rem}
footer{margin-top:2rem;border-top:1px solid #ddd;padding-top:.5rem;color:#666}
#bugCount{font-weight:700}
</style>
<link rel="stylesheet" href="/static/site.css" />
</head>
<body>{{end}}`

const navbarTpl = `{{define "navbar"}}<nav>
<a href="/">Home</a>
<a href="/research">Research</a>
<a href="/people">People</a>
<a href="/bugs">Bugs</a>
<a href="/contact">Contact</a>
</nav>{{end}}`

const footerTpl = `{{define "footer"}}<footer>&copy; FuturesLab. Source data maintained by lab contributors.</footer>
</body>
</html>{{end}}`

const homeTpl = `{{define "home"}}{{template "head" "Home"}}{{template "navbar"}}
<h1>FuturesLab</h1>
<p>We study how software fails. The lab finds, reports, and tracks defects in
widely used open-source projects, and uses what we learn to improve testing
and analysis tools.</p>
<p>See the <a href="/bugs">bug table</a> for everything the lab has reported
so far.</p>
{{template "footer"}}{{end}}`

const researchTpl = `{{define "research"}}{{template "head" "Research"}}{{template "navbar"}}
<h1>Research</h1>
<p>Current themes: automated bug finding, test oracle generation, and the
empirical study of defect lifecycles in open-source ecosystems.</p>
{{template "footer"}}{{end}}`

const peopleTpl = `{{define "people"}}{{template "head" "People"}}{{template "navbar"}}
<h1>People</h1>
<p>Faculty, graduate students, and undergraduate contributors. Each
contributor maintains their own bug report list, aggregated on the
<a href="/bugs">bugs page</a>.</p>
{{template "footer"}}{{end}}`

const contactTpl = `{{define "contact"}}{{template "head" "Contact"}}{{template "navbar"}}
<h1>Contact</h1>
<p>Reach the lab via the department office, or open an issue on any of our
public repositories.</p>
{{template "footer"}}{{end}}`

const bugsTpl = `{{define "bugs"}}{{template "head" "Reported Bugs"}}{{template "navbar"}}
<h1>Reported Software Bugs</h1>
{{if .Failed}}
<table id="bugTable">
<thead><tr><th>Date</th><th>Type</th><th>Bug</th><th>Lead</th></tr></thead>
<tbody><tr><td colspan="4" class="error">Failed to load data</td></tr></tbody>
</table>
{{else}}
<p><span id="bugCount">0</span> bugs reported by the lab.</p>
<form method="get" action="/bugs">
<input type="search" id="bugSearch" name="search" value="{{.St.Search}}" placeholder="Search bugs" />
{{if not .SortIsDefault}}<input type="hidden" name="sort" value="{{.St.SortCol}}" /><input type="hidden" name="dir" value="{{if .St.SortDesc}}desc{{else}}asc{{end}}" />{{end}}
{{if ne .St.PageSize 10}}<input type="hidden" name="size" value="{{.St.PageSize}}" />{{end}}
<button type="submit">Search</button>
</form>
<table id="bugTable">
<thead><tr>
<th><a href="{{.SortLink 0}}">Date</a></th>
<th><a href="{{.SortLink 1}}">Type</a></th>
<th>Bug</th>
<th><a href="{{.SortLink 3}}">Lead</a></th>
</tr></thead>
<tbody>
{{range .Rows}}<tr><td>{{.Date}}</td><td>{{.Type}}</td><td><a href="{{.URL}}" rel="noopener">{{.Label}}</a></td><td>{{.Lead}}</td></tr>
{{else}}<tr><td colspan="4">No matching bugs</td></tr>
{{end}}</tbody>
</table>
<div class="pager">
Page: {{range .PageNums}}<a href="{{$.PageLink .}}">{{.}}</a>{{end}}
Show: {{range .Sizes}}<a href="{{$.SizeLink .}}">{{.}}</a>{{end}}
</div>
<script>
(function () {
  var el = document.getElementById('bugCount');
  var steps = {{.Steps}};
  var i = 0;
  var t = setInterval(function () {
    if (i >= steps.length) { clearInterval(t); return; }
    el.textContent = steps[i++];
  }, {{.TickMS}});

  var input = document.getElementById('bugSearch');
  input.addEventListener('input', function () {
    var u = new URL(window.location);
    var q = input.value.trim();
    if (q) { u.searchParams.set('search', q); } else { u.searchParams.delete('search'); }
    history.replaceState(null, '', u);
  });
})();
</script>
{{end}}
{{template "footer"}}{{end}}`
