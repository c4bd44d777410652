package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"

	"github.com/google/uuid"
	"github.com/mkoster/hireboard/internal/filtering"
)

var funcMap = template.FuncMap{
	// json injects Go data into inline <script> chart setup.
	"json": func(v any) (template.JS, error) {
		data, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return template.JS(data), nil
	},
	"rating": func(id uuid.UUID) string {
		return fmt.Sprintf("%.1f", filtering.Rating(id))
	},
	"bucket": func(experience string) string {
		if b, ok := filtering.BucketFor(experience); ok {
			return b
		}
		return "n/a"
	},
}

var pageTmpls = map[string]*template.Template{
	"signin":     template.Must(template.New("signin").Funcs(funcMap).Parse(signinHTML)),
	"overview":   template.Must(template.New("overview").Funcs(funcMap).Parse(navHTML + overviewHTML)),
	"candidates": template.Must(template.New("candidates").Funcs(funcMap).Parse(navHTML + candidatesHTML)),
	"questions":  template.Must(template.New("questions").Funcs(funcMap).Parse(navHTML + questionsHTML)),
}

func renderPage(w http.ResponseWriter, status int, name string, data map[string]any) {
	tmpl, ok := pageTmpls[name]
	if !ok {
		http.Error(w, "unknown page: "+name, http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		http.Error(w, "template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

const navHTML = `{{define "nav"}}
<nav class="bg-slate-900 border-b border-slate-700 px-6 py-4">
    <div class="flex items-center justify-between max-w-6xl mx-auto">
        <div class="flex items-center space-x-2">
            <span class="text-xl font-bold text-white">Hireboard</span>
            <span class="text-xs bg-slate-700 text-slate-300 px-2 py-1 rounded">Recruiter</span>
        </div>
        <div class="flex items-center space-x-4">
            <a href="/" class="px-3 py-2 rounded hover:bg-slate-800 {{if eq .State.Tab "overview"}}bg-slate-800 text-white{{else}}text-slate-400{{end}}">Overview</a>
            <a href="/candidates" class="px-3 py-2 rounded hover:bg-slate-800 {{if eq .State.Tab "candidates"}}bg-slate-800 text-white{{else}}text-slate-400{{end}}">Candidates</a>
            <a href="/questions" class="px-3 py-2 rounded hover:bg-slate-800 {{if eq .State.Tab "questions"}}bg-slate-800 text-white{{else}}text-slate-400{{end}}">Questions</a>
            <form method="post" action="/signout">
                <button type="submit" class="px-3 py-2 text-slate-400 hover:text-white">Sign out{{with .Email}} ({{.}}){{end}}</button>
            </form>
        </div>
    </div>
</nav>
{{end}}`

const headHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Hireboard</title>
    <script src="https://cdn.tailwindcss.com"></script>
    <script src="https://cdn.jsdelivr.net/npm/chart.js@4"></script>
    <style>body { background-color: #0f172a; color: #e2e8f0; }</style>
</head>
<body class="min-h-screen">
{{template "nav" .}}
<main class="max-w-6xl mx-auto px-6 py-8">
{{with .Error}}<div class="bg-red-900/40 border border-red-700 text-red-200 rounded-lg px-4 py-3 mb-6">{{.}}</div>{{end}}`

const footHTML = `</main>
</body>
</html>`

const signinHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Sign in - Hireboard</title>
    <script src="https://cdn.tailwindcss.com"></script>
    <style>body { background-color: #0f172a; color: #e2e8f0; }</style>
</head>
<body class="min-h-screen flex items-center justify-center">
<div class="w-full max-w-sm bg-slate-900 border border-slate-700 rounded-lg p-8">
    <h1 class="text-xl font-bold text-white mb-6">Sign in to Hireboard</h1>
    {{with .Error}}<div class="bg-red-900/40 border border-red-700 text-red-200 rounded px-3 py-2 mb-4 text-sm">{{.}}</div>{{end}}
    <form method="post" action="/signin" class="space-y-4">
        <div>
            <label class="block text-sm text-slate-400 mb-1" for="email">Email</label>
            <input id="email" name="email" type="email" required class="w-full bg-slate-800 border border-slate-600 rounded px-3 py-2">
        </div>
        <div>
            <label class="block text-sm text-slate-400 mb-1" for="password">Password</label>
            <input id="password" name="password" type="password" required class="w-full bg-slate-800 border border-slate-600 rounded px-3 py-2">
        </div>
        <button type="submit" class="w-full bg-indigo-600 hover:bg-indigo-500 text-white rounded px-4 py-2">Sign in</button>
    </form>
</div>
</body>
</html>`

const overviewHTML = headHTML + `
<h1 class="text-2xl font-bold mb-6">Overview{{with .Recruiter}} - {{.FullName}}{{with .Company}} ({{.}}){{end}}{{end}}</h1>
<div class="grid grid-cols-1 md:grid-cols-3 gap-6 mb-8">
    <div class="bg-slate-900 border border-slate-700 rounded-lg p-6">
        <div class="text-slate-400 text-sm mb-1">Total submissions</div>
        <div class="text-3xl font-bold text-white">{{.State.Metrics.Total}}</div>
    </div>
    <div class="bg-slate-900 border border-yellow-900 rounded-lg p-6">
        <div class="text-yellow-400 text-sm mb-1">In progress</div>
        <div class="text-3xl font-bold text-yellow-300">{{.State.Metrics.InProgress}}</div>
    </div>
    <div class="bg-slate-900 border border-green-900 rounded-lg p-6">
        <div class="text-green-400 text-sm mb-1">Completed</div>
        <div class="text-3xl font-bold text-green-300">{{.State.Metrics.Completed}}</div>
    </div>
</div>
<div class="grid grid-cols-1 md:grid-cols-2 gap-6 mb-8">
    <div class="bg-slate-900 border border-slate-700 rounded-lg p-6">
        <h2 class="text-lg font-bold mb-4">Submissions per day</h2>
        <canvas id="byDay"></canvas>
    </div>
    <div class="bg-slate-900 border border-slate-700 rounded-lg p-6">
        <h2 class="text-lg font-bold mb-4">By experience</h2>
        <canvas id="byBucket"></canvas>
    </div>
</div>
<div class="bg-slate-900 border border-slate-700 rounded-lg p-6">
    <h2 class="text-lg font-bold mb-4">Assistant</h2>
    {{with .ChatReply}}<div class="bg-slate-800 border border-slate-600 rounded px-4 py-3 mb-4 whitespace-pre-wrap">{{.}}</div>{{end}}
    <form method="post" action="/chat" class="flex gap-2">
        <input name="prompt" placeholder="Ask about your pipeline..." required class="flex-1 bg-slate-800 border border-slate-600 rounded px-3 py-2">
        <button type="submit" {{if .State.Busy}}disabled{{end}} class="bg-indigo-600 hover:bg-indigo-500 disabled:opacity-50 text-white rounded px-4 py-2">Send</button>
    </form>
</div>
<script>
const byDay = {{json .State.Metrics.ByDay}};
new Chart(document.getElementById('byDay'), {
    type: 'line',
    data: {
        labels: byDay.map(d => d.date),
        datasets: [{label: 'Submissions', data: byDay.map(d => d.count), borderColor: '#818cf8', tension: 0.3}]
    }
});
const byBucket = {{json .State.Metrics.ByBucket}};
new Chart(document.getElementById('byBucket'), {
    type: 'bar',
    data: {
        labels: Object.keys(byBucket),
        datasets: [{label: 'Candidates', data: Object.values(byBucket), backgroundColor: '#34d399'}]
    }
});
</script>
` + footHTML

const candidatesHTML = headHTML + `
<h1 class="text-2xl font-bold mb-6">Candidates</h1>
<form method="get" action="/candidates" class="bg-slate-900 border border-slate-700 rounded-lg p-6 mb-6 grid grid-cols-1 md:grid-cols-5 gap-4 items-end">
    <div class="md:col-span-2">
        <label class="block text-sm text-slate-400 mb-1" for="q">Search</label>
        <input id="q" name="q" value="{{.State.Criteria.Query}}" placeholder="Title, name, email..." class="w-full bg-slate-800 border border-slate-600 rounded px-3 py-2">
    </div>
    <div>
        <label class="block text-sm text-slate-400 mb-1">Experience</label>
        <div class="flex gap-3 text-sm">
            {{$c := .State.Criteria}}
            {{range .Buckets}}
            <label class="flex items-center gap-1"><input type="checkbox" name="level" value="{{.}}" {{if $c.HasLevel .}}checked{{end}}>{{.}}</label>
            {{end}}
        </div>
    </div>
    <div>
        <label class="block text-sm text-slate-400 mb-1" for="min_rating">Min rating</label>
        <input id="min_rating" name="min_rating" type="number" min="0" max="5" step="0.1" {{if .State.Criteria.MinRating}}value="{{.State.Criteria.MinRating}}"{{end}} class="w-full bg-slate-800 border border-slate-600 rounded px-3 py-2">
    </div>
    <div class="flex gap-2">
        <div>
            <label class="block text-sm text-slate-400 mb-1" for="start">From</label>
            <input id="start" name="start" type="date" {{with .State.Criteria.Start}}value="{{.Format "2006-01-02"}}"{{end}} class="bg-slate-800 border border-slate-600 rounded px-2 py-2">
        </div>
        <div>
            <label class="block text-sm text-slate-400 mb-1" for="end">To</label>
            <input id="end" name="end" type="date" {{with .State.Criteria.End}}value="{{.Format "2006-01-02"}}"{{end}} class="bg-slate-800 border border-slate-600 rounded px-2 py-2">
        </div>
    </div>
    <button type="submit" class="bg-indigo-600 hover:bg-indigo-500 text-white rounded px-4 py-2">Filter</button>
</form>
<div class="text-sm text-slate-400 mb-2">Showing {{len .State.Filtered}} of {{.State.Metrics.Total}} submissions</div>
<div class="bg-slate-900 border border-slate-700 rounded-lg overflow-hidden">
    <table class="w-full text-sm text-left">
        <thead class="bg-slate-800 text-slate-400">
            <tr>
                <th class="px-4 py-3">Title</th>
                <th class="px-4 py-3">Candidate</th>
                <th class="px-4 py-3">Email</th>
                <th class="px-4 py-3">Experience</th>
                <th class="px-4 py-3">Bucket</th>
                <th class="px-4 py-3">Rating</th>
            </tr>
        </thead>
        <tbody>
            {{range .State.Filtered}}
            <tr class="border-t border-slate-800">
                <td class="px-4 py-3 text-white">{{.Title}}</td>
                {{with .Candidate}}
                <td class="px-4 py-3">{{.FullName}}</td>
                <td class="px-4 py-3 text-slate-400">{{.Email}}</td>
                <td class="px-4 py-3">{{.Experience}}</td>
                <td class="px-4 py-3">{{bucket .Experience}}</td>
                {{else}}
                <td class="px-4 py-3 text-slate-500" colspan="4">No candidate details</td>
                {{end}}
                <td class="px-4 py-3 text-yellow-300">{{rating .ID}}</td>
            </tr>
            {{else}}
            <tr><td class="px-4 py-6 text-slate-500" colspan="6">No submissions match the current filters</td></tr>
            {{end}}
        </tbody>
    </table>
</div>
` + footHTML

const questionsHTML = headHTML + `
<h1 class="text-2xl font-bold mb-6">Interview questions</h1>
{{with .Interview}}
<div class="bg-slate-900 border border-slate-700 rounded-lg p-6 mb-6">
    <div class="flex justify-between items-center mb-3">
        <h2 class="text-lg font-bold">Job description - {{.Title}}</h2>
        {{if not $.State.EditingDescription}}<a href="/questions?edit=1" class="text-indigo-400 hover:text-indigo-300 text-sm">Edit</a>{{end}}
    </div>
    {{if $.State.EditingDescription}}
    <form method="post" action="/interviews/{{.ID}}/description" class="space-y-3">
        <textarea name="description" rows="8" class="w-full bg-slate-800 border border-slate-600 rounded px-3 py-2">{{.JobDescription}}</textarea>
        <div class="flex gap-2">
            <button type="submit" {{if $.State.Busy}}disabled{{end}} class="bg-indigo-600 hover:bg-indigo-500 disabled:opacity-50 text-white rounded px-4 py-2">Save</button>
            <a href="/questions" class="px-4 py-2 text-slate-400 hover:text-white">Cancel</a>
        </div>
    </form>
    <form method="post" action="/interviews/{{.ID}}/description/import" class="flex gap-2 mt-4">
        <input name="url" type="url" placeholder="Import from posting URL..." required class="flex-1 bg-slate-800 border border-slate-600 rounded px-3 py-2">
        <button type="submit" class="bg-slate-700 hover:bg-slate-600 text-white rounded px-4 py-2">Import</button>
    </form>
    {{else}}
    <p class="text-slate-300 whitespace-pre-wrap">{{if .JobDescription}}{{.JobDescription}}{{else}}No job description yet.{{end}}</p>
    {{end}}
</div>
{{end}}
<div class="bg-slate-900 border border-slate-700 rounded-lg p-6 mb-6">
    <h2 class="text-lg font-bold mb-4">Questions</h2>
    <ul class="space-y-2 mb-4">
        {{range .Questions}}
        <li class="flex justify-between items-center bg-slate-800 border border-slate-700 rounded px-4 py-2">
            <span>{{.Text}}</span>
            <form method="post" action="/questions/{{.ID}}/delete">
                <button type="submit" {{if $.State.Busy}}disabled{{end}} class="text-red-400 hover:text-red-300 text-sm disabled:opacity-50">Delete</button>
            </form>
        </li>
        {{else}}
        <li class="text-slate-500">No questions yet.</li>
        {{end}}
    </ul>
    <form method="post" action="/questions" class="flex gap-2">
        <input name="text" placeholder="Add a question..." required class="flex-1 bg-slate-800 border border-slate-600 rounded px-3 py-2">
        <button type="submit" {{if .State.Busy}}disabled{{end}} class="bg-indigo-600 hover:bg-indigo-500 disabled:opacity-50 text-white rounded px-4 py-2">Add</button>
    </form>
</div>
{{with .Suggestions}}
<div class="bg-slate-900 border border-indigo-900 rounded-lg p-6 mb-6">
    <h2 class="text-lg font-bold mb-4">Suggested questions</h2>
    <ul class="space-y-2">
        {{range .}}
        <li class="flex justify-between items-center bg-slate-800 border border-slate-700 rounded px-4 py-2">
            <span>{{.}}</span>
            <form method="post" action="/questions">
                <input type="hidden" name="text" value="{{.}}">
                <button type="submit" class="text-indigo-400 hover:text-indigo-300 text-sm">Add</button>
            </form>
        </li>
        {{end}}
    </ul>
</div>
{{end}}
<div class="bg-slate-900 border border-slate-700 rounded-lg p-6">
    <h2 class="text-lg font-bold mb-4">Starter sets</h2>
    <div class="grid grid-cols-1 md:grid-cols-3 gap-4">
        {{range .Sets}}
        <div class="bg-slate-800 border border-slate-700 rounded p-4">
            <h3 class="font-bold text-white mb-2">{{.Title}}</h3>
            <ul class="space-y-1 text-sm">
                {{range .Questions}}
                <li class="flex justify-between gap-2">
                    <span class="text-slate-300">{{.}}</span>
                    <form method="post" action="/questions">
                        <input type="hidden" name="text" value="{{.}}">
                        <button type="submit" class="text-indigo-400 hover:text-indigo-300">+</button>
                    </form>
                </li>
                {{end}}
            </ul>
        </div>
        {{end}}
    </div>
</div>
` + footHTML
