package site

// pageTemplate is the html/template layout shared by every page. Widget
// sections are switched on by the page header's sections list.
const pageTemplate = `{{define "head"}}<!DOCTYPE html>
<html lang="ru">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Page.Title}}{{if ne .Page.Title .Info.Name}} | {{.Info.Name}}{{end}}</title>
  {{with .Page.Description}}<meta name="description" content="{{.}}">{{end}}
  <link rel="stylesheet" href="{{.BasePath}}style.css">
</head>
<body data-base="{{.BasePath}}" data-mode="{{if .Static}}static{{else}}live{{end}}">
{{end}}

{{define "header"}}
<header class="site-header">
  <a class="logo" href="{{if .BasePath}}{{.BasePath}}{{else}}./{{end}}">{{.Info.Name}}</a>
  <nav class="nav">
    {{range .Nav}}<a href="{{.Href}}"{{if .Active}} class="active"{{end}}>{{.Label}}</a>{{end}}
  </nav>
  <div class="search">
    <input type="search" id="search-input" placeholder="Поиск по сайту" autocomplete="off">
    <ul class="search-results" id="search-results"></ul>
  </div>
</header>
{{end}}

{{define "footer"}}
<footer class="site-footer">
  <div>&copy; {{.Year}} {{.Info.Name}}</div>
  <div class="contacts">
    {{with .Info.Phone}}<a href="tel:{{.}}">{{.}}</a>{{end}}
    {{with .Info.Email}}<a href="mailto:{{.}}">{{.}}</a>{{end}}
  </div>
</footer>
<script src="{{.BasePath}}app.js"></script>
</body>
</html>
{{end}}

{{define "hero"}}
<section class="hero" id="hero">
  <div class="hero-editor">
    <h2>Попробуйте сами: отредактируйте первый экран</h2>
    <textarea id="hero-source" spellcheck="false">{{.Sample}}</textarea>
    <div class="preview-status" id="preview-status">idle</div>
  </div>
  <iframe id="hero-preview" class="hero-preview" title="Предпросмотр" sandbox="allow-scripts"
    srcdoc="{{.SampleDoc}}" data-prefix="{{.Prefix}}" data-suffix="{{.Suffix}}" data-delay="{{.DelayMS}}"></iframe>
</section>
{{end}}

{{define "countdown"}}
<section class="countdown" id="countdown" data-hours="{{.Data.CountdownHours}}">
  <h2>Скидка 10% на первый проект</h2>
  <div class="countdown-timer"><span id="countdown-value">{{.Data.CountdownHours}}:00:00</span></div>
</section>
{{end}}

{{define "calculator"}}
<section class="calculator" id="calculator" data-min="{{.MinPages}}" data-max="{{.MaxPages}}"
  data-rate="{{.PerPageRate}}" data-max-total="{{.MaxTotal}}" data-currency="{{.Currency}}">
  <h2>Калькулятор стоимости</h2>
  <div class="site-types">
    {{range .Catalog.SiteTypes}}
    <button type="button" class="site-type{{if eq .ID $.Selection.SiteTypeID}} selected{{end}}" data-id="{{.ID}}" data-price="{{.BasePrice}}">
      <strong>{{.Label}}</strong>
      <span class="price">от {{price .BasePrice}}</span>
      <small>{{.Description}}</small>
    </button>
    {{end}}
  </div>
  <label class="pages">Страниц: <output id="pages-value">{{.Selection.PageCount}}</output>
    <input type="range" id="pages" min="{{.MinPages}}" max="{{.MaxPages}}" value="{{.Selection.PageCount}}">
    <small>{{price .PerPageRate}} за страницу</small>
  </label>
  <div class="extras">
    {{range .Catalog.Extras}}
    <label><input type="checkbox" class="extra" value="{{.ID}}" data-price="{{.Price}}" data-label="{{.Label}}"> {{.Label}} <span class="price">+{{price .Price}}</span></label>
    {{end}}
  </div>
  <ul class="breakdown" id="breakdown">{{with .Quote}}{{range .Breakdown}}<li>{{.Label}}: {{price .Price}}</li>{{end}}{{end}}</ul>
  <div class="completeness"><div class="bar" id="completeness-bar" style="width: {{if .Quote}}{{.Quote.CompletenessPercent}}{{else}}0{{end}}%"></div></div>
  <div class="total">Итого: <strong id="quote-total">{{if .Quote}}{{price .Quote.Total}}{{else}}—{{end}}</strong></div>
  <button type="button" id="quote-export"{{if not .Quote}} disabled{{end}}{{if .Static}} hidden{{end}}>Скачать смету (xlsx)</button>
  <div class="form-status" id="quote-error" hidden></div>
</section>
{{end}}

{{define "process"}}
<section class="process">
  <h2>Как мы работаем</h2>
  <ol>
    {{range .Data.Process}}<li><strong>{{.Title}}</strong><p>{{.Description}}</p></li>{{end}}
  </ol>
</section>
{{end}}

{{define "services"}}
<section class="services">
  {{range .Data.Services}}<div class="service-card" id="service-{{.ID}}"><span class="icon">{{.Icon}}</span>{{.Label}}</div>{{end}}
</section>
{{end}}

{{define "portfolio"}}
<section class="portfolio">
  {{range .Data.Projects}}
  <article class="project">
    <h3>{{.Title}}</h3>
    <p>{{.Description}}</p>
    <div class="tags">{{range .Tags}}<span class="tag">{{.}}</span>{{end}}</div>
  </article>
  {{end}}
</section>
{{end}}

{{define "features"}}
<section class="features">
  <h2>Почему мы</h2>
  <ul>{{range .Data.Features}}<li>{{.}}</li>{{end}}</ul>
</section>
{{end}}

{{define "stats"}}
<section class="stats">
  {{range .Data.Stats}}<div class="stat"><strong>{{.Value}}</strong><span>{{.Label}}</span></div>{{end}}
</section>
{{end}}

{{define "contact_form"}}
<section class="contact">
  <h2>Напишите нам</h2>
  <form id="contact-form" data-status="idle" data-mailto="{{.Info.Email}}" novalidate>
    <input name="name" placeholder="Имя" required maxlength="100">
    <input name="email" type="email" placeholder="Email" required maxlength="254">
    <textarea name="message" placeholder="Сообщение" required maxlength="5000"></textarea>
    <button type="submit">Отправить</button>
    <div class="form-status" id="contact-status" hidden></div>
  </form>
</section>
{{end}}

{{define "order_wizard"}}
<section class="order" id="order">
  <h2>Заявка на проект</h2>
  {{if .Static}}
  <p class="order-offline">Опишите проект, бюджет и сроки в письме на <a href="mailto:{{.Info.Email}}">{{.Info.Email}}</a>{{with .Info.Phone}} или позвоните: <a href="tel:{{.}}">{{.}}</a>{{end}}.</p>
  {{else}}
  <div class="wizard-progress"><div class="bar" id="order-progress"></div></div>
  <form id="order-form" data-step="0" novalidate>
    <fieldset data-step="0">
      <legend>Контакты</legend>
      <input name="name" placeholder="Имя">
      <input name="email" type="email" placeholder="Email">
      <input name="phone" type="tel" placeholder="+7 (___) ___-__-__">
    </fieldset>
    <fieldset data-step="1" hidden>
      <legend>Компания</legend>
      <input name="company" placeholder="Компания">
      <input name="website" type="url" placeholder="https://">
    </fieldset>
    <fieldset data-step="2" hidden>
      <legend>Детали</legend>
      <select name="project_type" id="order-project-type"></select>
      <textarea name="description" placeholder="Опишите задачу"></textarea>
      <label><input type="checkbox" id="order-attach-quote"> Приложить расчёт из калькулятора</label>
    </fieldset>
    <fieldset data-step="3" hidden>
      <legend>Бюджет</legend>
      <div id="order-budgets"></div>
    </fieldset>
    <div class="wizard-nav">
      <button type="button" id="order-prev" disabled>Назад</button>
      <button type="button" id="order-next">Далее</button>
    </div>
    <div class="form-status" id="order-status" hidden></div>
  </form>
  {{end}}
</section>
{{end}}

{{template "head" .}}
{{template "header" .}}
<main class="page page-{{if .Page.Slug}}{{.Page.Slug}}{{else}}home{{end}}">
  <h1>{{.Page.Title}}</h1>
  {{with .Page.Description}}<p class="lead">{{.}}</p>{{end}}
  {{if .Page.Has "hero"}}{{template "hero" .}}{{end}}
  {{if .Page.Has "countdown"}}{{template "countdown" .}}{{end}}
  <div class="markdown">{{.Content}}</div>
  {{if .Page.Has "features"}}{{template "features" .}}{{end}}
  {{if .Page.Has "stats"}}{{template "stats" .}}{{end}}
  {{if .Page.Has "services"}}{{template "services" .}}{{end}}
  {{if .Page.Has "portfolio"}}{{template "portfolio" .}}{{end}}
  {{if .Page.Has "calculator"}}{{template "calculator" .}}{{end}}
  {{if .Page.Has "process"}}{{template "process" .}}{{end}}
  {{if .Page.Has "contact_form"}}{{template "contact_form" .}}{{end}}
  {{if .Page.Has "order_wizard"}}{{template "order_wizard" .}}{{end}}
</main>
{{template "footer" .}}
`

const notFoundTemplate = `{{template "head" .}}
{{template "header" .}}
<main class="page page-404">
  <h1>404</h1>
  <p class="lead">{{.Page.Title}}</p>
  <a href="{{if .BasePath}}{{.BasePath}}{{else}}/{{end}}">На главную</a>
</main>
{{template "footer" .}}
`

const cssContent = `:root {
  --bg: #0f1020;
  --surface: #1a1b33;
  --text: #f1f1f6;
  --muted: #a3a3c2;
  --accent: #ff4fa3;
  --accent-2: #6c63ff;
  --radius: 12px;
}
* { box-sizing: border-box; }
body {
  margin: 0;
  font-family: "Inter", system-ui, sans-serif;
  background: var(--bg);
  color: var(--text);
  line-height: 1.5;
}
a { color: var(--accent); text-decoration: none; }
.site-header {
  display: flex;
  align-items: center;
  gap: 24px;
  padding: 16px 32px;
  background: var(--surface);
  position: sticky;
  top: 0;
  z-index: 10;
}
.logo { font-weight: 700; font-size: 1.25rem; color: var(--text); }
.nav { display: flex; gap: 16px; flex: 1; }
.nav a { color: var(--muted); }
.nav a.active, .nav a:hover { color: var(--text); }
.search { position: relative; }
.search input { padding: 6px 10px; border-radius: var(--radius); border: 1px solid #333; background: var(--bg); color: var(--text); }
.search-results { position: absolute; right: 0; list-style: none; margin: 4px 0; padding: 0; background: var(--surface); min-width: 260px; border-radius: var(--radius); }
.search-results li a { display: block; padding: 8px 12px; color: var(--text); }
.search-results li small { display: block; color: var(--muted); }
.page { max-width: 1100px; margin: 0 auto; padding: 32px; }
.lead { color: var(--muted); font-size: 1.15rem; }
section { margin: 48px 0; }
.hero { display: grid; grid-template-columns: 1fr 1fr; gap: 24px; }
.hero textarea { width: 100%; min-height: 320px; font-family: "JetBrains Mono", monospace; background: var(--surface); color: var(--text); border-radius: var(--radius); padding: 12px; border: none; }
.hero-preview { width: 100%; min-height: 360px; border: none; border-radius: var(--radius); background: #fff; }
.preview-status { color: var(--muted); font-size: 0.85rem; }
.countdown { text-align: center; background: linear-gradient(90deg, var(--accent-2), var(--accent)); border-radius: var(--radius); padding: 24px; }
.countdown-timer { font-size: 2.5rem; font-variant-numeric: tabular-nums; }
.site-types { display: grid; grid-template-columns: repeat(auto-fit, minmax(180px, 1fr)); gap: 12px; }
.site-type { text-align: left; padding: 16px; border-radius: var(--radius); border: 2px solid transparent; background: var(--surface); color: var(--text); cursor: pointer; }
.site-type.selected { border-color: var(--accent); }
.site-type small { display: block; color: var(--muted); }
.price { color: var(--accent); }
.pages { display: block; margin: 16px 0; }
.pages input { width: 100%; }
.extras { display: grid; grid-template-columns: repeat(auto-fit, minmax(240px, 1fr)); gap: 8px; }
.breakdown { list-style: none; padding: 0; color: var(--muted); }
.completeness, .wizard-progress { height: 8px; background: var(--surface); border-radius: 4px; overflow: hidden; }
.completeness .bar, .wizard-progress .bar { height: 100%; width: 0; background: var(--accent); transition: width 0.3s; }
.total { font-size: 1.5rem; margin: 16px 0; }
button { padding: 10px 20px; border-radius: var(--radius); border: none; background: var(--accent); color: #fff; cursor: pointer; }
button:disabled { opacity: 0.5; cursor: default; }
.process ol { display: grid; grid-template-columns: repeat(5, 1fr); gap: 16px; padding: 0; list-style: none; }
.services { display: grid; grid-template-columns: repeat(auto-fit, minmax(200px, 1fr)); gap: 12px; }
.service-card, .project, .stat { background: var(--surface); border-radius: var(--radius); padding: 20px; }
.service-card .icon { margin-right: 8px; }
.portfolio { display: grid; grid-template-columns: repeat(2, 1fr); gap: 16px; }
.tag { display: inline-block; margin-right: 6px; padding: 2px 8px; border-radius: 8px; background: var(--bg); color: var(--muted); font-size: 0.8rem; }
.stats { display: grid; grid-template-columns: repeat(4, 1fr); gap: 16px; text-align: center; }
.stat strong { display: block; font-size: 2rem; color: var(--accent); }
form input, form textarea, form select { display: block; width: 100%; margin: 8px 0; padding: 10px; border-radius: var(--radius); border: 1px solid #333; background: var(--surface); color: var(--text); }
form textarea { min-height: 120px; }
fieldset { border: none; padding: 0; }
.wizard-nav { display: flex; justify-content: space-between; margin-top: 16px; }
.form-status { margin-top: 12px; }
.form-status.success { color: #4ade80; }
.form-status.error { color: #f87171; }
.site-footer { display: flex; justify-content: space-between; padding: 24px 32px; background: var(--surface); color: var(--muted); }
.site-footer .contacts a { margin-left: 16px; }
`

const jsContent = `(function() {
  'use strict';

  var base = document.body.getAttribute('data-base') || '';
  var isStatic = document.body.getAttribute('data-mode') === 'static';

  function postJSON(url, body) {
    return fetch(url, {
      method: 'POST',
      headers: {'Content-Type': 'application/json'},
      body: JSON.stringify(body)
    }).then(function(res) {
      return res.json().catch(function() { return {}; }).then(function(data) {
        return {ok: res.ok, status: res.status, data: data};
      });
    });
  }

  function showStatus(el, kind, text) {
    if (!el) return;
    el.hidden = false;
    el.className = 'form-status ' + kind;
    el.textContent = text;
  }

  function errorText(data) {
    if (data && data.details) {
      return Object.keys(data.details).map(function(k) { return k + ': ' + data.details[k]; }).join(', ');
    }
    return (data && data.error) || 'Ошибка';
  }

  // Search
  var searchInput = document.getElementById('search-input');
  var searchResults = document.getElementById('search-results');
  var searchIndex = null;
  if (searchInput) {
    searchInput.addEventListener('input', function() {
      var q = searchInput.value.trim().toLowerCase();
      if (!q) { searchResults.innerHTML = ''; return; }
      var run = function() {
        searchResults.innerHTML = '';
        searchIndex.filter(function(e) {
          return (e.title + ' ' + e.content).toLowerCase().indexOf(q) !== -1;
        }).slice(0, 8).forEach(function(e) {
          var li = document.createElement('li');
          var a = document.createElement('a');
          a.href = base + e.path.replace(/^\//, '');
          a.textContent = e.title;
          var small = document.createElement('small');
          small.textContent = e.summary;
          a.appendChild(small);
          li.appendChild(a);
          searchResults.appendChild(li);
        });
      };
      if (searchIndex) { run(); return; }
      fetch(base + 'search-index.json').then(function(r) { return r.json(); }).then(function(data) {
        searchIndex = data || [];
        run();
      });
    });
  }

  // Calculator
  var calc = document.getElementById('calculator');
  var selection = {site_type: '', pages: 1, extras: []};
  if (calc) {
    var pagesInput = document.getElementById('pages');
    var pagesValue = document.getElementById('pages-value');
    var breakdown = document.getElementById('breakdown');
    var totalEl = document.getElementById('quote-total');
    var bar = document.getElementById('completeness-bar');
    var exportBtn = document.getElementById('quote-export');
    var quoteError = document.getElementById('quote-error');
    var selected = calc.querySelector('.site-type.selected');
    if (selected) selection.site_type = selected.getAttribute('data-id');
    selection.pages = parseInt(pagesInput.value, 10);
    calc.querySelectorAll('.extra').forEach(function(box) {
      if (box.checked) selection.extras.push(box.value);
    });

    var currency = calc.getAttribute('data-currency') || '';
    var formatPrice = function(n) {
      var parts = (n === Math.floor(n) ? String(n) : n.toFixed(2)).split('.');
      var s = parts[0].replace(/\B(?=(\d{3})+(?!\d))/g, ' ') + (parts[1] ? ',' + parts[1] : '');
      return currency ? s + ' ' + currency : s;
    };

    // localQuote mirrors the server's pricing from the data attributes.
    var localQuote = function(sel) {
      var btn = null;
      calc.querySelectorAll('.site-type').forEach(function(b) {
        if (b.getAttribute('data-id') === sel.site_type) btn = b;
      });
      var min = parseInt(calc.getAttribute('data-min'), 10);
      var max = parseInt(calc.getAttribute('data-max'), 10);
      if (!btn || !(sel.pages >= min && sel.pages <= max)) return null;
      var rate = parseFloat(calc.getAttribute('data-rate'));
      var base = parseFloat(btn.getAttribute('data-price'));
      var lines = [['Base', base], ['Pages×' + sel.pages, sel.pages * rate]];
      var total = base + sel.pages * rate;
      calc.querySelectorAll('.extra').forEach(function(box) {
        if (sel.extras.indexOf(box.value) === -1) return;
        var price = parseFloat(box.getAttribute('data-price'));
        lines.push([box.getAttribute('data-label'), price]);
        total += price;
      });
      var maxTotal = parseFloat(calc.getAttribute('data-max-total'));
      var pct = maxTotal > 0 ? Math.min(100, Math.max(0, Math.round(100 * total / maxTotal))) : 0;
      return {
        total_formatted: formatPrice(total),
        lines_formatted: lines.map(function(l) { return l[0] + ': ' + formatPrice(l[1]); }),
        completeness_percent: pct
      };
    };

    var renderQuote = function(q) {
      breakdown.innerHTML = '';
      (q.lines_formatted || []).forEach(function(line) {
        var li = document.createElement('li');
        li.textContent = line;
        breakdown.appendChild(li);
      });
      totalEl.textContent = q.total_formatted;
      bar.style.width = q.completeness_percent + '%';
      exportBtn.disabled = false;
      quoteError.hidden = true;
      try { localStorage.setItem('studio.quote', JSON.stringify(selection)); } catch (e) {}
    };

    var refresh = function() {
      if (!selection.site_type) return;
      if (isStatic) {
        var q = localQuote(selection);
        if (q) renderQuote(q);
        return;
      }
      postJSON('/api/quote', selection).then(function(res) {
        if (res.ok) { renderQuote(res.data); } else { showStatus(quoteError, 'error', errorText(res.data)); }
      });
    };

    calc.querySelectorAll('.site-type').forEach(function(btn) {
      btn.addEventListener('click', function() {
        calc.querySelectorAll('.site-type').forEach(function(b) { b.classList.remove('selected'); });
        btn.classList.add('selected');
        selection.site_type = btn.getAttribute('data-id');
        refresh();
      });
    });
    pagesInput.addEventListener('input', function() {
      selection.pages = parseInt(pagesInput.value, 10);
      pagesValue.textContent = pagesInput.value;
      refresh();
    });
    calc.querySelectorAll('.extra').forEach(function(box) {
      box.addEventListener('change', function() {
        if (isStatic) {
          var i = selection.extras.indexOf(box.value);
          if (i === -1) { selection.extras.push(box.value); } else { selection.extras.splice(i, 1); }
          refresh();
          return;
        }
        postJSON('/api/quote/toggle', {selection: selection, extra: box.value}).then(function(res) {
          if (!res.ok) { box.checked = !box.checked; showStatus(quoteError, 'error', errorText(res.data)); return; }
          selection = res.data.selection;
          if (res.data.quote) renderQuote(res.data.quote);
        });
      });
    });
    exportBtn.addEventListener('click', function() {
      fetch('/api/quote/export', {
        method: 'POST',
        headers: {'Content-Type': 'application/json'},
        body: JSON.stringify(selection)
      }).then(function(res) {
        if (!res.ok) throw new Error('export failed');
        return res.blob();
      }).then(function(blob) {
        var a = document.createElement('a');
        a.href = URL.createObjectURL(blob);
        a.download = 'estimate-' + selection.site_type + '-' + selection.pages + '.xlsx';
        a.click();
        URL.revokeObjectURL(a.href);
      }).catch(function(err) { showStatus(quoteError, 'error', err.message); });
    });
    refresh();
  }

  // Live hero editor
  var source = document.getElementById('hero-source');
  var frame = document.getElementById('hero-preview');
  if (source && frame && (isStatic || !window.WebSocket)) {
    var status = document.getElementById('preview-status');
    var prefix = frame.getAttribute('data-prefix') || '';
    var suffix = frame.getAttribute('data-suffix') || '';
    var delay = parseInt(frame.getAttribute('data-delay'), 10) || 300;
    var preamble = /^\s*<!DOCTYPE html>[\s\S]*?<body[^>]*>/i;
    var timer = null;
    source.addEventListener('input', function() {
      status.textContent = 'pending';
      clearTimeout(timer);
      timer = setTimeout(function() {
        frame.srcdoc = prefix + source.value.replace(preamble, '') + suffix;
        status.textContent = 'idle';
      }, delay);
    });
  } else if (source && frame) {
    var status = document.getElementById('preview-status');
    var proto = location.protocol === 'https:' ? 'wss://' : 'ws://';
    var ws = new WebSocket(proto + location.host + '/ws/preview');
    ws.onmessage = function(ev) {
      var msg = JSON.parse(ev.data);
      if (msg.type === 'render') {
        frame.srcdoc = msg.document;
        status.textContent = 'idle';
      } else if (msg.type === 'error') {
        status.textContent = msg.error;
      }
    };
    source.addEventListener('input', function() {
      if (ws.readyState !== WebSocket.OPEN) return;
      status.textContent = 'pending';
      ws.send(JSON.stringify({type: 'edit', content: source.value}));
    });
  }

  // Countdown
  var countdown = document.getElementById('countdown');
  if (countdown) {
    var hours = parseInt(countdown.getAttribute('data-hours'), 10) || 24;
    var key = 'studio.countdown';
    var deadline = parseInt(localStorage.getItem(key), 10);
    if (!deadline || deadline < Date.now()) {
      deadline = Date.now() + hours * 3600 * 1000;
      try { localStorage.setItem(key, String(deadline)); } catch (e) {}
    }
    var out = document.getElementById('countdown-value');
    var pad = function(n) { return n < 10 ? '0' + n : String(n); };
    var tick = function() {
      var left = Math.max(0, Math.floor((deadline - Date.now()) / 1000));
      out.textContent = pad(Math.floor(left / 3600)) + ':' + pad(Math.floor(left % 3600 / 60)) + ':' + pad(left % 60);
    };
    tick();
    setInterval(tick, 1000);
  }

  // Contact form
  var contactForm = document.getElementById('contact-form');
  if (contactForm) {
    var contactStatus = document.getElementById('contact-status');
    contactForm.addEventListener('submit', function(ev) {
      ev.preventDefault();
      if (contactForm.getAttribute('data-status') === 'sending') return;
      contactForm.setAttribute('data-status', 'sending');
      showStatus(contactStatus, '', 'Отправляем…');
      var body = {
        name: contactForm.elements.name.value,
        email: contactForm.elements.email.value,
        message: contactForm.elements.message.value
      };
      if (isStatic) {
        location.href = 'mailto:' + contactForm.getAttribute('data-mailto') +
          '?subject=' + encodeURIComponent('Сообщение с сайта от ' + body.name) +
          '&body=' + encodeURIComponent(body.message + '\n\n' + body.name + ' <' + body.email + '>');
        contactForm.setAttribute('data-status', 'success');
        showStatus(contactStatus, 'success', 'Откроется почтовый клиент с вашим сообщением.');
        return;
      }
      postJSON('/api/contact', body).then(function(res) {
        if (res.ok) {
          contactForm.setAttribute('data-status', 'success');
          showStatus(contactStatus, 'success', 'Спасибо! Мы скоро свяжемся с вами.');
          contactForm.reset();
        } else {
          contactForm.setAttribute('data-status', 'error');
          showStatus(contactStatus, 'error', errorText(res.data));
        }
      });
    });
  }

  // Order wizard
  var orderForm = document.getElementById('order-form');
  if (orderForm) {
    var step = 0, lastStep = 3;
    var prevBtn = document.getElementById('order-prev');
    var nextBtn = document.getElementById('order-next');
    var progress = document.getElementById('order-progress');
    var orderStatus = document.getElementById('order-status');

    fetch('/api/order/steps').then(function(r) { return r.json(); }).then(function(info) {
      lastStep = info.steps.length - 1;
      var select = document.getElementById('order-project-type');
      info.project_types.forEach(function(pt) {
        var opt = document.createElement('option');
        opt.value = pt.id;
        opt.textContent = pt.label;
        select.appendChild(opt);
      });
      var budgets = document.getElementById('order-budgets');
      info.budgets.forEach(function(b, i) {
        var label = document.createElement('label');
        var input = document.createElement('input');
        input.type = 'radio';
        input.name = 'budget';
        input.value = b;
        input.checked = i === 0;
        label.appendChild(input);
        label.appendChild(document.createTextNode(' ' + b));
        budgets.appendChild(label);
      });
    });

    var collect = function() {
      var el = orderForm.elements;
      var budget = orderForm.querySelector('input[name=budget]:checked');
      var req = {
        name: el.name.value,
        email: el.email.value,
        phone: el.phone.value,
        company: el.company.value,
        website: el.website.value,
        project_type: el.project_type.value,
        description: el.description.value,
        budget: budget ? budget.value : ''
      };
      var attach = document.getElementById('order-attach-quote');
      if (attach && attach.checked) {
        try {
          var saved = JSON.parse(localStorage.getItem('studio.quote'));
          if (saved && saved.site_type) req.quote = saved;
        } catch (e) {}
      }
      return req;
    };

    var show = function(n, pct) {
      step = n;
      orderForm.setAttribute('data-step', String(n));
      orderForm.querySelectorAll('fieldset').forEach(function(fs) {
        fs.hidden = parseInt(fs.getAttribute('data-step'), 10) !== n;
      });
      prevBtn.disabled = n === 0;
      nextBtn.textContent = n === lastStep ? 'Отправить' : 'Далее';
      progress.style.width = pct + '%';
    };

    prevBtn.addEventListener('click', function() {
      var n = Math.max(0, step - 1);
      show(n, Math.round(n * 100 / lastStep));
    });

    nextBtn.addEventListener('click', function() {
      var req = collect();
      postJSON('/api/order/validate?step=' + step, req).then(function(res) {
        if (!res.ok) { showStatus(orderStatus, 'error', errorText(res.data)); return; }
        orderStatus.hidden = true;
        if (!res.data.last) { show(res.data.next_step, res.data.progress); return; }
        nextBtn.disabled = true;
        postJSON('/api/order', req).then(function(sub) {
          nextBtn.disabled = false;
          if (sub.ok) {
            showStatus(orderStatus, 'success', 'Заявка ' + sub.data.id + ' отправлена.');
            orderForm.reset();
            show(0, 0);
          } else {
            showStatus(orderStatus, 'error', sub.data.error || errorText(sub.data));
          }
        });
      });
    });
  }
})();
`
