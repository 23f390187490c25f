package html

// layoutCSS is the complete layout stylesheet. Both presentations are always
// present: the grid defaults to four columns (side-by-side), and a single
// max-width media rule reflows the same markup into the three-column inline
// layout. No script is involved in the switch.
//
// The collapse of long unchanged runs is driven by a checkbox's :checked
// state, which is plain CSS as well.
const layoutCSS = `
@media (prefers-color-scheme: light) {
    html {
        --c-bg-primary: #ffffff;
        --c-fg-primary: #000000;
        --c-bg-auxiliary: #f8f8f8;
        --c-fg-auxiliary: #a0a0a0;
        --c-border-line: #e0e0e0;
        --c-bg-insert: #ecfdf0;
        --c-bg-delete: #fbe9eb;
        --c-bg-delete-lineno: #f9d7dc;
        --c-fg-delete-lineno: #ae969a;
        --c-bg-delete-word: #fac5cd;
        --c-fg-delete-word: #400000;
        --c-fg-insert-word: #004000;
        --c-bg-insert-word: #c7f0d2;
        --c-fg-insert-lineno: #9bb0a1;
        --c-bg-insert-lineno: #ddfbe6;
        --c-bg-empty: #f0f0f0;
        --c-fg-foldline: #bbbbbb;
        --c-border-delete: #e0c8c8;
    }
}

@media (prefers-color-scheme: dark) {
    html {
        --c-bg-primary: #010409;
        --c-fg-primary: #a0a0a0;
        --c-bg-auxiliary: #0d1117;
        --c-fg-auxiliary: #f0f6fc;
        --c-fg-foldline: #bbbbbb;
        --c-border-line: #3d444d;
        --c-bg-insert: #223738;
        --c-bg-delete: #280d1f;
        --c-bg-delete-lineno: #421632;
        --c-fg-delete-lineno: #ae969a;
        --c-bg-delete-word: #421632;
        --c-fg-delete-word: #fac5cd;
        --c-fg-insert-word: #c7f0d2;
        --c-bg-insert-word: #325148;
        --c-fg-insert-lineno: #9bb0a1;
        --c-bg-insert-lineno: #325148;
        --c-bg-empty: #080b0f;
        --c-border-delete: #e0c8c8;
    }
}

@media print {
    html {
        --c-bg-primary: #ffffff;
        --c-fg-primary: #000000;
        --c-bg-auxiliary: #ffffff;
        --c-fg-auxiliary: #a0a0a0;
        --c-border-line: #e0e0e0;
        --c-bg-insert: #ecfdf0;
        --c-bg-delete: #fbe9eb;
        --c-bg-delete-lineno: #f9d7dc;
        --c-fg-delete-lineno: #ae969a;
        --c-bg-delete-word: #fac5cd;
        --c-fg-delete-word: #400000;
        --c-fg-insert-word: #004000;
        --c-bg-insert-word: #c7f0d2;
        --c-fg-insert-lineno: #9bb0a1;
        --c-bg-insert-lineno: #ddfbe6;
        --c-bg-empty: #ffffff;
        --c-fg-foldline: #bbbbbb;
        --c-border-delete: #e0c8c8;
    }
}

html {
    background-color: var(--c-bg-primary);
    height: 100%;
    width: 100%;
}

.wsd-file-container {
    font-family: monospace;
    font-size: 9pt;
    background-color: var(--c-bg-auxiliary);
    border: solid 1px var(--c-border-line);
    margin: 15px;
}

.wsd-file-title {
    padding: 10px 20px;
    font-size: 10pt;
    font-weight: bold;
    position: sticky;
    top: 0;
    z-index: 1;
    display: flex;
}

.wsd-filename {
    max-width: 30em;
    text-overflow: ellipsis;
    overflow: hidden;
    white-space: nowrap;
    direction: rtl;
}

.wsd-file-status {
    margin-left: 1em;
    font-weight: normal;
    color: var(--c-fg-auxiliary);
}

.wsd-skipped-note {
    padding: 10px 20px;
    color: var(--c-fg-auxiliary);
    border-top: 1px solid var(--c-border-line);
}

.wsd-diff-files {
    color: var(--c-fg-primary);
}

.wsd-overview {
    margin: 15px;
    text-align: center;
}

.wsd-diff {
    background-color: var(--c-bg-primary);
    overflow-x: auto;
    display: grid;
    align-items: start;
    border-top: 1px solid var(--c-border-line);
}

.wsd-line {
    padding-left: calc(4em + 5px);
    text-indent: -4em;
    padding-top: 2px;
    align-self: stretch;
    min-width: 15em;
}

/* Make individual syntax tokens wrap anywhere */
.wsd-line > span {
    overflow-wrap: anywhere;
    white-space: pre-wrap;
}

.wsd-line.wsd-left.wsd-change, .wsd-line.wsd-left.wsd-insert {
    background-color: var(--c-bg-delete);
}

.wsd-line.wsd-right.wsd-change, .wsd-line.wsd-right.wsd-insert {
    background-color: var(--c-bg-insert);
}

.wsd-lineno.wsd-left.wsd-change, .wsd-lineno.wsd-left.wsd-insert {
    background-color: var(--c-bg-delete-lineno);
    color: var(--c-fg-delete-lineno);
}

.wsd-lineno.wsd-right.wsd-change, .wsd-lineno.wsd-right.wsd-insert {
    background-color: var(--c-bg-insert-lineno);
    color: var(--c-fg-insert-lineno);
}

.wsd-right > .wsd-word-change {
    background-color: var(--c-bg-insert-word);
    color: var(--c-fg-insert-word);
}

.wsd-left > .wsd-word-change {
    background-color: var(--c-bg-delete-word);
    color: var(--c-fg-delete-word);
}

.wsd-lineno {
    word-break: keep-all;
    margin: 0;
    padding-left: 30px;
    padding-right: 5px;
    overflow: clip;
    position: relative;
    text-align: right;
    color: var(--c-fg-auxiliary);
    background-color: var(--c-bg-auxiliary);
    border-right: 1px solid var(--c-border-line);
    align-self: stretch;
}

.wsd-lineno::after {
    position: absolute;
    right: 0;
    content: "\a↳\a↳\a↳\a↳\a↳\a↳\a↳\a↳\a↳\a↳\a↳\a↳\a↳\a↳\a↳\a↳\a↳\a↳";
    white-space: pre;
    color: var(--c-fg-auxiliary);
}

/* Default rules for split diff for wide screens (laptops) */
.wsd-diff {
    grid-template-columns: min-content 1fr min-content 1fr;
}

.wsd-empty {
    background-color: var(--c-bg-empty);
    align-self: stretch;
}

/* line continuation arrows only in non-empty lines */
.wsd-lineno.wsd-empty::after {
    content: "";
}

.wsd-lineno, .wsd-left {
    user-select: none;
}

/* Collapsing runs of unchanged lines */
.wsd-collapse {
    grid-column: 1 / span 4;
    display: grid;
    grid-template-columns: subgrid;
}

.wsd-collapse-controls {
    grid-column: 1 / span 4;
    display: flex;
    justify-content: center;
    color: var(--c-fg-auxiliary);

    background-image: radial-gradient(var(--c-fg-foldline) 1px, transparent 0);
    background-size: 10px 10px;
    background-position: center;
    background-repeat: repeat-x;
    background-color: var(--c-bg-auxiliary)
}

.wsd-collapse-controls > label {
    background-color: var(--c-bg-auxiliary);
}

.wsd-collapse:has(input[type="checkbox"]:checked) > span {
    display: none;
}

/* Unified diff for narrow screens (phones) */
@media screen and (max-width: 70em) {
    .wsd-file-title {
        background-color: var(--c-bg-auxiliary);
        border-bottom: solid 1px var(--c-border-line);
    }

    .wsd-diff {
        border-top: none;
        grid-auto-flow: dense;
        grid-template-columns: min-content min-content 1fr;
    }

    .wsd-collapse, .wsd-collapse-controls {
        grid-column: 1 / span 3;
    }

    .wsd-lineno {
        padding-left: 1em;
    }

    .wsd-lineno.wsd-left {
        grid-column: 1;
    }

    .wsd-lineno.wsd-left.wsd-change, .wsd-lineno.wsd-right.wsd-change {
        grid-column: 1 / span 2;
        display: grid;
        grid-template-columns: 1fr 1fr;
        padding-left: 0;
        padding-right: 0;
        grid-auto-flow: dense;
        column-gap: 10px;
    }

    .wsd-lineno.wsd-right.wsd-change::before {
        content: "";
        align-self: stretch;
        grid-column: 1;
        border-right: 1px solid var(--c-border-line);
        margin-right: -6px;
    }

    .wsd-lineno.wsd-left.wsd-change::before {
        content: "";
        align-self: stretch;
        grid-column: 2;
        border-left: 1px solid var(--c-border-delete);
        margin-left: -5px;
    }

    .wsd-lineno.wsd-left.wsd-insert {
        border-right: 1px solid var(--c-border-delete);
    }

    .wsd-lineno.wsd-right.wsd-change::after {
        grid-column: 2;
    }

    .wsd-lineno.wsd-left.wsd-insert {
        grid-column: 1 / span 2;
        display: grid;
        grid-template-columns: 1fr 1fr;
        grid-auto-flow: dense;
        column-gap: 10px;
        padding-left: 0;
        padding-right: 0;
    }

    .wsd-lineno.wsd-right {
        grid-column: 2;
    }

    .wsd-lineno.wsd-right.wsd-insert {
        grid-column: 2;
    }

    .wsd-line.wsd-left, .wsd-line.wsd-right.wsd-empty {
        display: none;
    }

    .wsd-line {
        grid-column: 3;
    }

    .wsd-line.wsd-left.wsd-insert {
        display: block;
    }

    .wsd-line.wsd-left.wsd-change {
        display: block;
    }

    .wsd-lineno.wsd-right.wsd-empty {
        display: none;
    }

    .wsd-lineno.wsd-left.wsd-empty {
        background-color: var(--c-bg-insert-lineno);
    }

    .wsd-lineno.wsd-left.wsd-insert::before {
        content: "";
        grid-column: 2;
        border-left: 1px solid var(--c-border-delete);
        margin-left: -5px;
    }
}
`
