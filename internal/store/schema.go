package store

// Amounts are TEXT holding two-place decimals so the export reads exactly
// as displayed.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
    run_id               TEXT PRIMARY KEY,
    created_at           TEXT NOT NULL,
    source               TEXT,
    mode                 TEXT NOT NULL,
    months               INTEGER NOT NULL,
    start_month          INTEGER NOT NULL,
    settlement_policy    TEXT NOT NULL,
    trainer_count        INTEGER NOT NULL,
    total_startup        TEXT NOT NULL,
    rent_startup         TEXT NOT NULL,
    final_balance        TEXT NOT NULL,
    avg_monthly_revenue  TEXT NOT NULL,
    avg_monthly_net      TEXT NOT NULL,
    total_tax            TEXT NOT NULL,
    final_net_profit     TEXT NOT NULL,
    break_even_month     INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS run_months (
    run_id               TEXT NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
    step                 INTEGER NOT NULL,
    calendar_month       INTEGER NOT NULL,
    month_name           TEXT NOT NULL,
    revenue              TEXT NOT NULL,
    expenses             TEXT NOT NULL,
    fixed_expenses       TEXT NOT NULL,
    trainer_expenses     TEXT NOT NULL,
    gross_cash           TEXT NOT NULL,
    gross_card           TEXT NOT NULL,
    vat                  TEXT NOT NULL,
    pos                  TEXT NOT NULL,
    official_profit      TEXT NOT NULL,
    tax                  TEXT NOT NULL,
    net                  TEXT NOT NULL,
    balance              TEXT NOT NULL,
    sales_volume         REAL NOT NULL,
    group_volume         REAL NOT NULL,
    volume_percent       REAL NOT NULL DEFAULT 0,
    vacations            TEXT NOT NULL DEFAULT '',
    extra_expense        TEXT NOT NULL DEFAULT '0.00',
    annual_tax           TEXT NOT NULL DEFAULT '0.00',
    tax_discrepancy      TEXT NOT NULL DEFAULT '0.00',
    settlement_applied   INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (run_id, step)
);

CREATE TABLE IF NOT EXISTS run_trainers (
    run_id               TEXT NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
    trainer_id           TEXT NOT NULL,
    name                 TEXT NOT NULL,
    type                 TEXT NOT NULL,
    realized_lessons     REAL NOT NULL,
    group_lessons        REAL NOT NULL,
    monthly_cost         TEXT NOT NULL,
    gross_revenue        TEXT NOT NULL,
    PRIMARY KEY (run_id, trainer_id)
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
`
